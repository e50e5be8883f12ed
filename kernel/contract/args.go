package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/common/xaddress"
)

// AddressArg 解析地址参数，支持0x十六进制和xchain地址
func AddressArg(args map[string][]byte, name string) (common.Address, error) {
	value, ok := args[name]
	if !ok || len(value) == 0 {
		return common.Address{}, errors.Errorf("missing argument `%s'", name)
	}
	addr, err := xaddress.Parse(string(value))
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "argument `%s'", name)
	}
	return addr, nil
}

// HashArg 解析32字节的0x十六进制参数
func HashArg(args map[string][]byte, name string) (common.Hash, error) {
	value, ok := args[name]
	if !ok || len(value) == 0 {
		return common.Hash{}, errors.Errorf("missing argument `%s'", name)
	}
	buf, err := hexutil.Decode(string(value))
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "argument `%s'", name)
	}
	if len(buf) != common.HashLength {
		return common.Hash{}, errors.Errorf("argument `%s' expect %d bytes, got %d", name, common.HashLength, len(buf))
	}
	return common.BytesToHash(buf), nil
}

// AmountArg 解析十进制参数，取值范围为uint256
func AmountArg(args map[string][]byte, name string) (*big.Int, error) {
	value, ok := args[name]
	if !ok || len(value) == 0 {
		return nil, errors.Errorf("missing argument `%s'", name)
	}
	amount, ok := new(big.Int).SetString(string(value), 10)
	if !ok || amount.Sign() < 0 || amount.Cmp(math.MaxBig256) > 0 {
		return nil, errors.Errorf("argument `%s' is not a valid amount: %s", name, value)
	}
	return amount, nil
}

// StringArg returns a required string argument
func StringArg(args map[string][]byte, name string) (string, error) {
	value, ok := args[name]
	if !ok || len(value) == 0 {
		return "", errors.Errorf("missing argument `%s'", name)
	}
	return string(value), nil
}
