package mock

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
)

var _ contract.KContext = (*FakeKContext)(nil)

// FakeKContext 脱离Manager直接调用合约组件时使用，状态写入内存沙盒
type FakeKContext struct {
	*sandbox.XMCache

	args      map[string][]byte
	initiator common.Address
	caller    common.Address
	address   common.Address
	used      contract.Limits

	// CallFunc 处理跨合约调用，未设置时返回ErrContractNotFound
	CallFunc func(address common.Address, method string, args map[string][]byte) (*contract.Response, error)
}

func NewFakeKContext(caller, address common.Address, args map[string][]byte) *FakeKContext {
	return &FakeKContext{
		XMCache:   sandbox.NewXModelCache(sandbox.NewMemXModel()),
		args:      args,
		initiator: caller,
		caller:    caller,
		address:   address,
	}
}

// As 复用同一个沙盒切换调用者和参数
func (c *FakeKContext) As(caller common.Address, args map[string][]byte) *FakeKContext {
	n := *c
	n.caller = caller
	n.initiator = caller
	n.args = args
	return &n
}

func (c *FakeKContext) Args() map[string][]byte {
	return c.args
}

func (c *FakeKContext) Initiator() common.Address {
	return c.initiator
}

func (c *FakeKContext) Caller() common.Address {
	return c.caller
}

func (c *FakeKContext) Address() common.Address {
	return c.address
}

func (c *FakeKContext) ContractName() string {
	return "fake"
}

func (c *FakeKContext) Method() string {
	return ""
}

func (c *FakeKContext) AddResourceUsed(delta contract.Limits) {
	c.used.Add(delta)
}

func (c *FakeKContext) ResourceLimit() contract.Limits {
	return contract.MaxLimits
}

// ResourceUsed returns the accumulated resource usage
func (c *FakeKContext) ResourceUsed() contract.Limits {
	return c.used
}

func (c *FakeKContext) Call(address common.Address, method string, args map[string][]byte) (*contract.Response, error) {
	if c.CallFunc == nil {
		return nil, contract.ErrContractNotFound
	}
	return c.CallFunc(address, method, args)
}
