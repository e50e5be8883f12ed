// Package rescue 允许持有RESCUER_ROLE的账户把误转入合约实例的token转出
package rescue

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
)

const RescueContract = "RescueControl"

var RescuerRole = access.RoleOf("RESCUER_ROLE")

// TokenTransferer 以当前合约实例的身份转出token
type TokenTransferer interface {
	SafeTransfer(ctx contract.KContext, token, to common.Address, amount *big.Int) error
}

type Control struct {
	roles      access.RoleHierarchy
	transferer TokenTransferer
}

func NewControl(roles access.RoleHierarchy, transferer TokenTransferer) *Control {
	return &Control{
		roles:      roles,
		transferer: transferer,
	}
}

// Init 只能在初始化过程中调用
func (c *Control) Init(ctx contract.KContext) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	return c.InitUnchained(ctx)
}

// InitUnchained 设置RESCUER_ROLE的管理角色为OWNER_ROLE
func (c *Control) InitUnchained(ctx contract.KContext) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	return c.roles.SetRoleAdmin(ctx, RescuerRole, access.OwnerRole)
}

// RescueERC20 先校验角色再调用token合约，之后不再修改本合约状态。
// token返回的错误原样返回。
func (c *Control) RescueERC20(ctx contract.KContext, token, to common.Address, amount *big.Int) error {
	if err := c.roles.CheckRole(ctx, RescuerRole, ctx.Caller()); err != nil {
		return err
	}
	return c.transferer.SafeTransfer(ctx, token, to, amount)
}
