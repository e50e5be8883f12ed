package blacklist

import (
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
	"github.com/xuperchain/xcontrol/lib/logs"
)

const (
	BlacklistMethod       = "blacklist"
	UnBlacklistMethod     = "unBlacklist"
	SelfBlacklistMethod   = "selfBlacklist"
	IsBlacklistedMethod   = "isBlacklisted"
	OwnerRoleMethod       = "OWNER_ROLE"
	BlacklisterRoleMethod = "BLACKLISTER_ROLE"
)

// Contract 黑名单控制的合约方法
type Contract struct {
	*Control

	access *access.AccessControl
	log    logs.Logger
}

// NewContract 黑名单状态与控制角色的access共用同一个合约实例
func NewContract(ac *access.AccessControl, log logs.Logger) *Contract {
	return &Contract{
		Control: NewControl(ac),
		access:  ac,
		log:     log,
	}
}

// Register 注册独立部署时的全部方法
func (c *Contract) Register(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, "initialize", c.Initialize)
	c.RegisterMixin(registry, contractName)
	access.NewKernMethod(c.access).Register(registry, contractName)
	registry.RegisterKernMethod(contractName, OwnerRoleMethod, access.RoleConstant(access.OwnerRole))
}

// RegisterMixin 只注册黑名单相关方法，供宿主合约组合使用
func (c *Contract) RegisterMixin(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, BlacklistMethod, c.BlacklistAccount)
	registry.RegisterKernMethod(contractName, UnBlacklistMethod, c.UnBlacklistAccount)
	registry.RegisterKernMethod(contractName, SelfBlacklistMethod, c.SelfBlacklistCaller)
	registry.RegisterKernMethod(contractName, IsBlacklistedMethod, c.IsBlacklistedAccount)
	registry.RegisterKernMethod(contractName, BlacklisterRoleMethod, access.RoleConstant(BlacklisterRole))
}

// Initialize 调用者获得OWNER_ROLE
func (c *Contract) Initialize(ctx contract.KContext) (*contract.Response, error) {
	err := initializable.Initializer(ctx, func() error {
		if err := c.access.Init(ctx); err != nil {
			return err
		}
		if err := c.access.SetupRole(ctx, access.OwnerRole, ctx.Caller()); err != nil {
			return err
		}
		return c.Init(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("BlacklistControl initialized", "address", ctx.Address().Hex(), "owner", ctx.Caller().Hex())
	return contract.OK(nil), nil
}

func (c *Contract) BlacklistAccount(ctx contract.KContext) (*contract.Response, error) {
	account, err := contract.AddressArg(ctx.Args(), "account")
	if err != nil {
		return nil, err
	}
	if err := c.Blacklist(ctx, account); err != nil {
		return nil, err
	}
	return contract.OK(nil), nil
}

func (c *Contract) UnBlacklistAccount(ctx contract.KContext) (*contract.Response, error) {
	account, err := contract.AddressArg(ctx.Args(), "account")
	if err != nil {
		return nil, err
	}
	if err := c.UnBlacklist(ctx, account); err != nil {
		return nil, err
	}
	return contract.OK(nil), nil
}

func (c *Contract) SelfBlacklistCaller(ctx contract.KContext) (*contract.Response, error) {
	if err := c.SelfBlacklist(ctx); err != nil {
		return nil, err
	}
	return contract.OK(nil), nil
}

func (c *Contract) IsBlacklistedAccount(ctx contract.KContext) (*contract.Response, error) {
	account, err := contract.AddressArg(ctx.Args(), "account")
	if err != nil {
		return nil, err
	}
	listed, err := c.IsBlacklisted(ctx, account)
	if err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(listed)), nil
}
