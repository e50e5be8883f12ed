package manager

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
	"github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/lib/logs"
)

// invocation 一次顶层调用的执行环境，跨合约调用共享同一个沙盒
type invocation struct {
	mgr       *managerImpl
	state     *sandbox.XMCache
	initiator common.Address
	log       logs.Logger

	used, limit contract.Limits
	// 当前调用栈上的合约实例
	callStack map[common.Address]bool
}

func (m *managerImpl) newInvocation(state *sandbox.XMCache, initiator common.Address, log logs.Logger) *invocation {
	return &invocation{
		mgr:       m,
		state:     state,
		initiator: initiator,
		log:       log,
		limit:     m.cfg.ResourceLimits,
		callStack: make(map[common.Address]bool),
	}
}

func (inv *invocation) call(caller, address common.Address, contractName, method string,
	args map[string][]byte) (*contract.Response, error) {
	if inv.callStack[address] {
		return nil, errors.Wrapf(contract.ErrRecursiveCall, "%s.%s at %s", contractName, method, address.Hex())
	}
	handler, err := inv.mgr.kregistry.GetKernMethod(contractName, method)
	if err != nil {
		return nil, err
	}

	inv.callStack[address] = true
	defer delete(inv.callStack, address)

	kctx := &kcontextImpl{
		StateSandbox: inv.state,
		inv:          inv,
		args:         args,
		caller:       caller,
		address:      address,
		contractName: contractName,
		method:       method,
	}
	kctx.AddResourceUsed(contract.Limits{XFee: inv.mgr.cfg.MethodFee(contractName, method)})
	if inv.mgr.cfg.EnableDebugLog {
		inv.log.Debug("call kernel method", "contract", contractName, "method", method,
			"address", address.Hex(), "caller", caller.Hex())
	}

	resp, err := handler(kctx)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = contract.OK(nil)
	}
	if inv.used.Exceed(inv.limit) {
		return nil, errors.Wrapf(contract.ErrLimitExceeded, "used %+v, limit %+v", inv.used, inv.limit)
	}
	return resp, nil
}

type kcontextImpl struct {
	contract.StateSandbox
	inv *invocation

	args         map[string][]byte
	caller       common.Address
	address      common.Address
	contractName string
	method       string
}

// 交易相关数据
func (k *kcontextImpl) Args() map[string][]byte {
	return k.args
}

func (k *kcontextImpl) Initiator() common.Address {
	return k.inv.initiator
}

func (k *kcontextImpl) Caller() common.Address {
	return k.caller
}

func (k *kcontextImpl) Address() common.Address {
	return k.address
}

func (k *kcontextImpl) ContractName() string {
	return k.contractName
}

func (k *kcontextImpl) Method() string {
	return k.method
}

func (k *kcontextImpl) AddEvent(events ...*ledger.ContractEvent) {
	k.inv.state.AddEvent(events...)
}

func (k *kcontextImpl) AddResourceUsed(delta contract.Limits) {
	k.inv.used.Add(delta)
}

func (k *kcontextImpl) ResourceLimit() contract.Limits {
	return k.inv.limit
}

func (k *kcontextImpl) Call(address common.Address, method string, args map[string][]byte) (*contract.Response, error) {
	contractName, err := contractOf(k.inv.state, address)
	if err != nil {
		return nil, err
	}
	resp, err := k.inv.call(k.address, address, contractName, method, args)
	if err != nil {
		return nil, err
	}
	if resp.HasError() {
		return nil, errors.Errorf("call %s.%s failed: %s", contractName, method, resp.Message)
	}
	return resp, nil
}
