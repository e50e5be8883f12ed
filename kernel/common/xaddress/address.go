// Package xaddress 解析命令行和配置中出现的账户地址
package xaddress

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// xchain普通地址的版本号
	xchainAddrVersion = 1
	checksumLen       = 4
)

// Parse 支持0x开头的十六进制地址和xchain base58地址
func Parse(addr string) (common.Address, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return common.Address{}, fmt.Errorf("empty address")
	}
	if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
		if !common.IsHexAddress(addr) {
			return common.Address{}, fmt.Errorf("%s is not a valid hex address", addr)
		}
		return common.HexToAddress(addr), nil
	}
	return FromXchainAK(addr)
}

// MustParse is like Parse but panics on error, for tests and constants.
func MustParse(addr string) common.Address {
	a, err := Parse(addr)
	if err != nil {
		panic(err)
	}
	return a
}

// FromXchainAK 取base58解码后的ripemd160部分作为20字节地址
func FromXchainAK(addr string) (common.Address, error) {
	rawAddr := base58.Decode(addr)
	if len(rawAddr) != 1+common.AddressLength+checksumLen {
		return common.Address{}, fmt.Errorf("%s is not a valid address", addr)
	}
	body := rawAddr[:1+common.AddressLength]
	if !bytes.Equal(doubleSha256(body)[:checksumLen], rawAddr[len(body):]) {
		return common.Address{}, fmt.Errorf("%s checksum mismatch", addr)
	}
	return common.BytesToAddress(rawAddr[1 : 1+common.AddressLength]), nil
}

// ToXchainAK 把20字节地址编码为xchain地址
func ToXchainAK(addr common.Address) string {
	body := make([]byte, 0, 1+common.AddressLength+checksumLen)
	body = append(body, xchainAddrVersion)
	body = append(body, addr.Bytes()...)
	body = append(body, doubleSha256(body)[:checksumLen]...)
	return base58.Encode(body)
}

func doubleSha256(data []byte) []byte {
	h1 := sha256.Sum256(data)
	h2 := sha256.Sum256(h1[:])
	return h2[:]
}
