package xtoken

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	XTokenContract = "XToken"

	Initialize   = "initialize"
	Mint         = "mint"
	Burn         = "burn"
	Transfer     = "transfer"
	TransferFrom = "transferFrom"
	Approve      = "approve"
	Allowance    = "allowance"
	BalanceOf    = "balanceOf"
	TotalSupply  = "totalSupply"
	Name         = "name"
	Symbol       = "symbol"
	Decimals     = "decimals"
)

// 合约内 big.Int 一律以十进制字符串存储

// TokenMeta token的基本信息，初始化时写入
type TokenMeta struct {
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	Owner    common.Address `json:"owner"`
}

func KeyOfMeta() string {
	return "xtoken/meta"
}

func KeyOfTotalSupply() string {
	return "xtoken/totalSupply"
}

func KeyOfBalance(address common.Address) string {
	return "xtoken/balance/" + address.Hex()
}

func KeyOfAllowance(owner, spender common.Address) string {
	return "xtoken/allowance/" + owner.Hex() + "/" + spender.Hex()
}
