// Package ctoken 组合了黑名单和救援控制的token合约
package ctoken

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/blacklist"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/rescue"
	"github.com/xuperchain/xcontrol/kernel/engines/xuperos/xtoken"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
)

const CTokenContract = "CToken"

// Contract 所有组件共用一个AccessControl，状态都在同一个合约实例下
type Contract struct {
	access    *access.AccessControl
	token     *xtoken.Contract
	blacklist *blacklist.Contract
	rescue    *rescue.Contract

	contractCtx *xtoken.Context
}

func NewContract(ctx *xtoken.Context) *Contract {
	ac := access.NewAccessControl()
	c := &Contract{
		access:      ac,
		token:       xtoken.NewContract(ctx),
		blacklist:   blacklist.NewContract(ac, ctx.XLog),
		contractCtx: ctx,
	}
	c.rescue = rescue.NewContract(ac, &selfTransferer{host: c, next: xtoken.NewCallTransferer()}, ctx.XLog)
	return c
}

// selfTransferer 救援本合约自身的token时直接转账，与合约调用自身transfer的检查一致，其余token走跨合约调用
type selfTransferer struct {
	host *Contract
	next rescue.TokenTransferer
}

func (t *selfTransferer) SafeTransfer(ctx contract.KContext, token, to common.Address, amount *big.Int) error {
	if token != ctx.Address() {
		return t.next.SafeTransfer(ctx, token, to, amount)
	}
	if err := t.host.blacklist.RequireNotBlacklisted(ctx, ctx.Address()); err != nil {
		return err
	}
	if err := t.host.blacklist.RequireNotBlacklisted(ctx, to); err != nil {
		return err
	}
	return t.host.token.Core.Transfer(ctx, ctx.Address(), to, amount)
}

func (c *Contract) Register(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, xtoken.Initialize, c.Initialize)

	c.token.RegisterQueries(registry, contractName)
	registry.RegisterKernMethod(contractName, xtoken.Mint, c.blacklist.NotBlacklisted(c.mint))
	registry.RegisterKernMethod(contractName, xtoken.Burn, c.blacklist.NotBlacklisted(c.token.Burn))
	registry.RegisterKernMethod(contractName, xtoken.Approve, c.blacklist.NotBlacklisted(c.token.Approve))
	registry.RegisterKernMethod(contractName, xtoken.Transfer, c.blacklist.NotBlacklisted(c.transfer))
	registry.RegisterKernMethod(contractName, xtoken.TransferFrom, c.blacklist.NotBlacklisted(c.transferFrom))

	c.blacklist.RegisterMixin(registry, contractName)
	c.rescue.RegisterMixin(registry, contractName)
	access.NewKernMethod(c.access).Register(registry, contractName)
	registry.RegisterKernMethod(contractName, blacklist.OwnerRoleMethod, access.RoleConstant(access.OwnerRole))
}

// Initialize 在一次初始化中依次完成角色、黑名单、救援和token的初始化
func (c *Contract) Initialize(ctx contract.KContext) (*contract.Response, error) {
	err := initializable.Initializer(ctx, func() error {
		if err := c.access.Init(ctx); err != nil {
			return err
		}
		if err := c.access.SetupRole(ctx, access.OwnerRole, ctx.Caller()); err != nil {
			return err
		}
		if err := c.blacklist.Init(ctx); err != nil {
			return err
		}
		if err := c.rescue.Init(ctx); err != nil {
			return err
		}
		return c.token.Init(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.contractCtx.XLog.Info("CToken initialized", "address", ctx.Address().Hex(), "owner", ctx.Caller().Hex())
	return contract.OK(nil), nil
}

func (c *Contract) mint(ctx contract.KContext) (*contract.Response, error) {
	if err := c.requireArgNotBlacklisted(ctx, "to"); err != nil {
		return nil, err
	}
	return c.token.Mint(ctx)
}

func (c *Contract) transfer(ctx contract.KContext) (*contract.Response, error) {
	if err := c.requireArgNotBlacklisted(ctx, "to"); err != nil {
		return nil, err
	}
	return c.token.Transfer(ctx)
}

func (c *Contract) transferFrom(ctx contract.KContext) (*contract.Response, error) {
	if err := c.requireArgNotBlacklisted(ctx, "from"); err != nil {
		return nil, err
	}
	if err := c.requireArgNotBlacklisted(ctx, "to"); err != nil {
		return nil, err
	}
	return c.token.TransferFrom(ctx)
}

func (c *Contract) requireArgNotBlacklisted(ctx contract.KContext, name string) error {
	account, err := contract.AddressArg(ctx.Args(), name)
	if err != nil {
		return err
	}
	return c.blacklist.RequireNotBlacklisted(ctx, account)
}
