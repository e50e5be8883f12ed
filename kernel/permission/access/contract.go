package access

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
)

// KernMethod 角色相关的合约方法，可挂载到任意使用AccessControl的合约上
type KernMethod struct {
	control *AccessControl
}

func NewKernMethod(control *AccessControl) *KernMethod {
	return &KernMethod{control: control}
}

// Register 以标准方法名注册到contractName下
func (t *KernMethod) Register(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, "hasRole", t.HasRole)
	registry.RegisterKernMethod(contractName, "getRoleAdmin", t.GetRoleAdmin)
	registry.RegisterKernMethod(contractName, "grantRole", t.GrantRole)
	registry.RegisterKernMethod(contractName, "revokeRole", t.RevokeRole)
	registry.RegisterKernMethod(contractName, "renounceRole", t.RenounceRole)
}

func (t *KernMethod) HasRole(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	role, err := contract.HashArg(args, "role")
	if err != nil {
		return nil, err
	}
	account, err := contract.AddressArg(args, "account")
	if err != nil {
		return nil, err
	}
	ok, err := t.control.HasRole(ctx, role, account)
	if err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(ok)), nil
}

func (t *KernMethod) GetRoleAdmin(ctx contract.KContext) (*contract.Response, error) {
	role, err := contract.HashArg(ctx.Args(), "role")
	if err != nil {
		return nil, err
	}
	admin, err := t.control.GetRoleAdmin(ctx, role)
	if err != nil {
		return nil, err
	}
	return contract.OK([]byte(RoleHex(admin))), nil
}

func (t *KernMethod) GrantRole(ctx contract.KContext) (*contract.Response, error) {
	return t.mutate(ctx, t.control.GrantRole)
}

func (t *KernMethod) RevokeRole(ctx contract.KContext) (*contract.Response, error) {
	return t.mutate(ctx, t.control.RevokeRole)
}

func (t *KernMethod) RenounceRole(ctx contract.KContext) (*contract.Response, error) {
	return t.mutate(ctx, t.control.RenounceRole)
}

func (t *KernMethod) mutate(ctx contract.KContext,
	fn func(contract.KContext, Role, common.Address) error) (*contract.Response, error) {
	args := ctx.Args()
	role, err := contract.HashArg(args, "role")
	if err != nil {
		return nil, err
	}
	account, err := contract.AddressArg(args, "account")
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, role, account); err != nil {
		return nil, err
	}
	return contract.OK(nil), nil
}

// RoleConstant 返回角色标识的只读方法，如 OWNER_ROLE
func RoleConstant(role Role) contract.KernMethod {
	return func(ctx contract.KContext) (*contract.Response, error) {
		return contract.OK([]byte(RoleHex(role))), nil
	}
}
