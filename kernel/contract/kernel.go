package contract

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/ledger"
)

type KernRegistry interface {
	RegisterKernMethod(contract, method string, handler KernMethod)
	RegisterShortcut(oldmethod, contract, method string)
	GetKernMethod(contract, method string) (KernMethod, error)
}

type KernMethod func(ctx KContext) (*Response, error)

type KContext interface {
	// 交易相关数据
	Args() map[string][]byte
	// Initiator 交易发起者
	Initiator() common.Address
	// Caller 直接调用者，跨合约调用时为上一层合约实例地址
	Caller() common.Address
	// Address 当前执行的合约实例地址
	Address() common.Address
	ContractName() string
	Method() string

	// 状态修改接口
	StateSandbox
	AddEvent(events ...*ledger.ContractEvent)

	AddResourceUsed(delta Limits)
	ResourceLimit() Limits

	// Call 以当前合约实例的身份调用另一个合约实例
	Call(address common.Address, method string, args map[string][]byte) (*Response, error)
}
