package access

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
)

const (
	adminKeyPrefix  = "access/admin/"
	memberKeyPrefix = "access/member/"
	memberFlag      = "1"
)

// RoleHierarchy 角色层级，供需要鉴权的合约组件注入使用
type RoleHierarchy interface {
	HasRole(ctx contract.KContext, role Role, account common.Address) (bool, error)
	GetRoleAdmin(ctx contract.KContext, role Role) (Role, error)
	// CheckRole 账户没有角色时返回MissingRoleError
	CheckRole(ctx contract.KContext, role Role, account common.Address) error
	// SetupRole 不做权限校验直接授予角色，只应在初始化时使用
	SetupRole(ctx contract.KContext, role Role, account common.Address) error
	SetRoleAdmin(ctx contract.KContext, role Role, adminRole Role) error
}

var _ RoleHierarchy = (*AccessControl)(nil)

// AccessControl 角色层级的状态实现，本身不保存状态
type AccessControl struct{}

func NewAccessControl() *AccessControl {
	return &AccessControl{}
}

func (a *AccessControl) Init(ctx contract.KContext) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	return a.InitUnchained(ctx)
}

func (a *AccessControl) InitUnchained(ctx contract.KContext) error {
	return initializable.OnlyInitializing(ctx)
}

func (a *AccessControl) HasRole(ctx contract.KContext, role Role, account common.Address) (bool, error) {
	value, err := ctx.Get(contract.InstanceBucket(ctx), memberKey(role, account))
	if sandbox.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(value) == memberFlag, nil
}

// GetRoleAdmin 未设置时返回DefaultAdminRole
func (a *AccessControl) GetRoleAdmin(ctx contract.KContext, role Role) (Role, error) {
	value, err := ctx.Get(contract.InstanceBucket(ctx), adminKey(role))
	if sandbox.IsNotFound(err) {
		return DefaultAdminRole, nil
	}
	if err != nil {
		return Role{}, err
	}
	return common.BytesToHash(value), nil
}

func (a *AccessControl) CheckRole(ctx contract.KContext, role Role, account common.Address) error {
	ok, err := a.HasRole(ctx, role, account)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingRoleError{Account: account, Role: role}
	}
	return nil
}

// OnlyRole 校验直接调用者持有角色
func (a *AccessControl) OnlyRole(ctx contract.KContext, role Role) error {
	return a.CheckRole(ctx, role, ctx.Caller())
}

// GrantRole 调用者必须持有role的管理角色
func (a *AccessControl) GrantRole(ctx contract.KContext, role Role, account common.Address) error {
	if err := a.onlyAdmin(ctx, role); err != nil {
		return err
	}
	return a.grantRole(ctx, role, account)
}

// RevokeRole 调用者必须持有role的管理角色
func (a *AccessControl) RevokeRole(ctx contract.KContext, role Role, account common.Address) error {
	if err := a.onlyAdmin(ctx, role); err != nil {
		return err
	}
	return a.revokeRole(ctx, role, account)
}

// RenounceRole 只能放弃自己的角色
func (a *AccessControl) RenounceRole(ctx contract.KContext, role Role, account common.Address) error {
	if account != ctx.Caller() {
		return ErrBadConfirmation
	}
	return a.revokeRole(ctx, role, account)
}

func (a *AccessControl) SetupRole(ctx contract.KContext, role Role, account common.Address) error {
	return a.grantRole(ctx, role, account)
}

func (a *AccessControl) SetRoleAdmin(ctx contract.KContext, role Role, adminRole Role) error {
	previous, err := a.GetRoleAdmin(ctx, role)
	if err != nil {
		return err
	}
	if err := ctx.Put(contract.InstanceBucket(ctx), adminKey(role), adminRole.Bytes()); err != nil {
		return err
	}
	return RoleAdminChangedEvent.Emit(ctx, role, previous, adminRole)
}

func (a *AccessControl) onlyAdmin(ctx contract.KContext, role Role) error {
	admin, err := a.GetRoleAdmin(ctx, role)
	if err != nil {
		return err
	}
	return a.OnlyRole(ctx, admin)
}

func (a *AccessControl) grantRole(ctx contract.KContext, role Role, account common.Address) error {
	ok, err := a.HasRole(ctx, role, account)
	if err != nil || ok {
		return err
	}
	if err := ctx.Put(contract.InstanceBucket(ctx), memberKey(role, account), []byte(memberFlag)); err != nil {
		return err
	}
	return RoleGrantedEvent.Emit(ctx, role, account, ctx.Caller())
}

func (a *AccessControl) revokeRole(ctx contract.KContext, role Role, account common.Address) error {
	ok, err := a.HasRole(ctx, role, account)
	if err != nil || !ok {
		return err
	}
	if err := ctx.Del(contract.InstanceBucket(ctx), memberKey(role, account)); err != nil {
		return err
	}
	return RoleRevokedEvent.Emit(ctx, role, account, ctx.Caller())
}

func adminKey(role Role) []byte {
	return []byte(adminKeyPrefix + role.Hex())
}

func memberKey(role Role, account common.Address) []byte {
	return []byte(memberKeyPrefix + role.Hex() + "/" + account.Hex())
}
