// Package blacklist 为合约实例提供黑名单控制
//
// 黑名单记录保存在实例bucket的 blacklist/ 前缀下，只有持有
// BLACKLISTER_ROLE 的账户可以修改他人的状态，任意账户都可以把自己加入黑名单。
package blacklist

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
)

const (
	BlacklistContract = "BlacklistControl"

	blacklistKeyPrefix = "blacklist/"
	blacklistedFlag    = "1"
)

var BlacklisterRole = access.RoleOf("BLACKLISTER_ROLE")

// Control 黑名单状态操作，角色校验委托给注入的RoleHierarchy
type Control struct {
	roles access.RoleHierarchy
}

func NewControl(roles access.RoleHierarchy) *Control {
	return &Control{roles: roles}
}

// Init 只能在初始化过程中调用
func (c *Control) Init(ctx contract.KContext) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	return c.InitUnchained(ctx)
}

// InitUnchained 设置BLACKLISTER_ROLE的管理角色为OWNER_ROLE
func (c *Control) InitUnchained(ctx contract.KContext) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	return c.roles.SetRoleAdmin(ctx, BlacklisterRole, access.OwnerRole)
}

func (c *Control) IsBlacklisted(ctx contract.KContext, account common.Address) (bool, error) {
	value, err := ctx.Get(contract.InstanceBucket(ctx), blacklistKey(account))
	if sandbox.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(value) == blacklistedFlag, nil
}

// Blacklist 已在黑名单中时不做任何修改
func (c *Control) Blacklist(ctx contract.KContext, account common.Address) error {
	if err := c.roles.CheckRole(ctx, BlacklisterRole, ctx.Caller()); err != nil {
		return err
	}
	_, err := c.add(ctx, account)
	return err
}

// UnBlacklist 不在黑名单中时不做任何修改
func (c *Control) UnBlacklist(ctx contract.KContext, account common.Address) error {
	if err := c.roles.CheckRole(ctx, BlacklisterRole, ctx.Caller()); err != nil {
		return err
	}
	listed, err := c.IsBlacklisted(ctx, account)
	if err != nil || !listed {
		return err
	}
	if err := ctx.Del(contract.InstanceBucket(ctx), blacklistKey(account)); err != nil {
		return err
	}
	return UnBlacklistedEvent.Emit(ctx, account)
}

// SelfBlacklist 把调用者加入黑名单，依次产生Blacklisted和SelfBlacklisted事件
func (c *Control) SelfBlacklist(ctx contract.KContext) error {
	account := ctx.Caller()
	added, err := c.add(ctx, account)
	if err != nil || !added {
		return err
	}
	return SelfBlacklistedEvent.Emit(ctx, account)
}

// RequireNotBlacklisted 账户在黑名单中时返回BlacklistedAccountError
func (c *Control) RequireNotBlacklisted(ctx contract.KContext, account common.Address) error {
	listed, err := c.IsBlacklisted(ctx, account)
	if err != nil {
		return err
	}
	if listed {
		return &BlacklistedAccountError{Account: account}
	}
	return nil
}

// NotBlacklisted 包装合约方法，调用者在黑名单中时拒绝执行
func (c *Control) NotBlacklisted(method contract.KernMethod) contract.KernMethod {
	return func(ctx contract.KContext) (*contract.Response, error) {
		if err := c.RequireNotBlacklisted(ctx, ctx.Caller()); err != nil {
			return nil, err
		}
		return method(ctx)
	}
}

func (c *Control) add(ctx contract.KContext, account common.Address) (bool, error) {
	listed, err := c.IsBlacklisted(ctx, account)
	if err != nil || listed {
		return false, err
	}
	if err := ctx.Put(contract.InstanceBucket(ctx), blacklistKey(account), []byte(blacklistedFlag)); err != nil {
		return false, err
	}
	return true, BlacklistedEvent.Emit(ctx, account)
}

func blacklistKey(account common.Address) []byte {
	return []byte(blacklistKeyPrefix + account.Hex())
}
