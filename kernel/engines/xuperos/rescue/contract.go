package rescue

import (
	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/permission/access"
	"github.com/xuperchain/xcontrol/lib/logs"
)

const (
	RescueERC20Method = "rescueERC20"
	OwnerRoleMethod   = "OWNER_ROLE"
	RescuerRoleMethod = "RESCUER_ROLE"
)

// Contract token救援的合约方法
type Contract struct {
	*Control

	access *access.AccessControl
	log    logs.Logger
}

func NewContract(ac *access.AccessControl, transferer TokenTransferer, log logs.Logger) *Contract {
	return &Contract{
		Control: NewControl(ac, transferer),
		access:  ac,
		log:     log,
	}
}

func (c *Contract) Register(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, "initialize", c.Initialize)
	c.RegisterMixin(registry, contractName)
	access.NewKernMethod(c.access).Register(registry, contractName)
	registry.RegisterKernMethod(contractName, OwnerRoleMethod, access.RoleConstant(access.OwnerRole))
}

// RegisterMixin 供宿主合约组合使用
func (c *Contract) RegisterMixin(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, RescueERC20Method, c.Rescue)
	registry.RegisterKernMethod(contractName, RescuerRoleMethod, access.RoleConstant(RescuerRole))
}

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
	c.log.Info("RescueControl initialized", "address", ctx.Address().Hex(), "owner", ctx.Caller().Hex())
	return contract.OK(nil), nil
}

// Rescue 参数：token、to、amount
func (c *Contract) Rescue(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	token, err := contract.AddressArg(args, "token")
	if err != nil {
		return nil, err
	}
	to, err := contract.AddressArg(args, "to")
	if err != nil {
		return nil, err
	}
	amount, err := contract.AmountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	if err := c.RescueERC20(ctx, token, to, amount); err != nil {
		return nil, err
	}
	c.log.Info("token rescued", "contract", ctx.Address().Hex(), "token", token.Hex(),
		"to", to.Hex(), "amount", amount.String(), "rescuer", ctx.Caller().Hex())
	return contract.OK(nil), nil
}
