package xtoken

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
)

// CallTransferer 以当前合约实例为调用者，调用token合约的transfer方法
type CallTransferer struct{}

func NewCallTransferer() *CallTransferer {
	return &CallTransferer{}
}

// SafeTransfer token返回非true时视为失败
func (t *CallTransferer) SafeTransfer(ctx contract.KContext, token, to common.Address, amount *big.Int) error {
	resp, err := ctx.Call(token, Transfer, map[string][]byte{
		"to":     []byte(to.Hex()),
		"amount": []byte(amount.String()),
	})
	if err != nil {
		return err
	}
	if len(resp.Body) > 0 && string(resp.Body) != "true" {
		return ErrOperationFailed
	}
	return nil
}
