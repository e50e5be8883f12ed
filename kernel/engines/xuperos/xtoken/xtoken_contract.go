package xtoken

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
)

// Contract ERC20 token 合约方法
type Contract struct {
	Core *Core

	contractCtx *Context
}

func NewContract(ctx *Context) *Contract {
	return &Contract{
		Core:        NewCore(),
		contractCtx: ctx,
	}
}

// Register 注册全部token方法
func (c *Contract) Register(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, Initialize, c.Initialize)
	c.RegisterQueries(registry, contractName)
	registry.RegisterKernMethod(contractName, Mint, c.Mint)
	registry.RegisterKernMethod(contractName, Burn, c.Burn)
	registry.RegisterKernMethod(contractName, Transfer, c.Transfer)
	registry.RegisterKernMethod(contractName, TransferFrom, c.TransferFrom)
	registry.RegisterKernMethod(contractName, Approve, c.Approve)
}

// RegisterQueries 只注册只读方法
func (c *Contract) RegisterQueries(registry contract.KernRegistry, contractName string) {
	registry.RegisterKernMethod(contractName, Allowance, c.Allowance)
	registry.RegisterKernMethod(contractName, BalanceOf, c.BalanceOf)
	registry.RegisterKernMethod(contractName, TotalSupply, c.TotalSupply)
	registry.RegisterKernMethod(contractName, Name, c.Name)
	registry.RegisterKernMethod(contractName, Symbol, c.Symbol)
	registry.RegisterKernMethod(contractName, Decimals, c.Decimals)
}

// Initialize 参数：name、symbol、decimals，可选initialSupply铸造给调用者
func (c *Contract) Initialize(ctx contract.KContext) (*contract.Response, error) {
	err := initializable.Initializer(ctx, func() error {
		return c.Init(ctx)
	})
	if err != nil {
		return nil, err
	}
	return contract.OK(nil), nil
}

// Init 按参数初始化token，调用者成为owner。只能在初始化过程中调用
func (c *Contract) Init(ctx contract.KContext) error {
	meta, err := ParseMeta(ctx.Args())
	if err != nil {
		return err
	}
	meta.Owner = ctx.Caller()
	if err := c.Core.Init(ctx, meta); err != nil {
		return err
	}
	c.contractCtx.XLog.Info("XToken", "name", meta.Name, "symbol", meta.Symbol, "owner", meta.Owner.Hex())

	if _, ok := ctx.Args()["initialSupply"]; !ok {
		return nil
	}
	supply, err := contract.AmountArg(ctx.Args(), "initialSupply")
	if err != nil {
		return err
	}
	return c.Core.Mint(ctx, meta.Owner, supply)
}

// ParseMeta 解析token基本信息参数
func ParseMeta(args map[string][]byte) (*TokenMeta, error) {
	name, err := contract.StringArg(args, "name")
	if err != nil {
		return nil, err
	}
	symbol, err := contract.StringArg(args, "symbol")
	if err != nil {
		return nil, err
	}
	meta := &TokenMeta{
		Name:     name,
		Symbol:   symbol,
		Decimals: 18,
	}
	if value, ok := args["decimals"]; ok {
		decimals, err := strconv.ParseUint(string(value), 10, 8)
		if err != nil {
			return nil, errors.Wrap(err, "invalid decimals")
		}
		meta.Decimals = uint8(decimals)
	}
	return meta, nil
}

func (c *Contract) Mint(ctx contract.KContext) (*contract.Response, error) {
	if err := c.Core.RequireOwner(ctx); err != nil {
		return nil, err
	}
	args := ctx.Args()
	to, err := contract.AddressArg(args, "to")
	if err != nil {
		return nil, err
	}
	amount, err := contract.AmountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	if err := c.Core.Mint(ctx, to, amount); err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(true)), nil
}

func (c *Contract) Burn(ctx contract.KContext) (*contract.Response, error) {
	amount, err := contract.AmountArg(ctx.Args(), "amount")
	if err != nil {
		return nil, err
	}
	if err := c.Core.Burn(ctx, ctx.Caller(), amount); err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(true)), nil
}

func (c *Contract) Transfer(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	to, err := contract.AddressArg(args, "to")
	if err != nil {
		return nil, err
	}
	amount, err := contract.AmountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	if err := c.Core.Transfer(ctx, ctx.Caller(), to, amount); err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(true)), nil
}

func (c *Contract) TransferFrom(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	from, err := contract.AddressArg(args, "from")
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
	if err := c.Core.SpendAllowance(ctx, from, ctx.Caller(), amount); err != nil {
		return nil, err
	}
	if err := c.Core.Transfer(ctx, from, to, amount); err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(true)), nil
}

func (c *Contract) Approve(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	spender, err := contract.AddressArg(args, "spender")
	if err != nil {
		return nil, err
	}
	amount, err := contract.AmountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	if err := c.Core.Approve(ctx, ctx.Caller(), spender, amount); err != nil {
		return nil, err
	}
	return contract.OK(contract.BoolBody(true)), nil
}

func (c *Contract) Allowance(ctx contract.KContext) (*contract.Response, error) {
	args := ctx.Args()
	owner, err := contract.AddressArg(args, "owner")
	if err != nil {
		return nil, err
	}
	spender, err := contract.AddressArg(args, "spender")
	if err != nil {
		return nil, err
	}
	amount, err := c.Core.Allowance(ctx, owner, spender)
	if err != nil {
		return nil, err
	}
	return contract.OK([]byte(amount.String())), nil
}

func (c *Contract) BalanceOf(ctx contract.KContext) (*contract.Response, error) {
	account, err := contract.AddressArg(ctx.Args(), "account")
	if err != nil {
		return nil, err
	}
	bal, err := c.Core.BalanceOf(ctx, account)
	if err != nil {
		return nil, err
	}
	return contract.OK([]byte(bal.String())), nil
}

func (c *Contract) TotalSupply(ctx contract.KContext) (*contract.Response, error) {
	supply, err := c.Core.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}
	return contract.OK([]byte(supply.String())), nil
}

func (c *Contract) Name(ctx contract.KContext) (*contract.Response, error) {
	return c.meta(ctx, func(m *TokenMeta) string { return m.Name })
}

func (c *Contract) Symbol(ctx contract.KContext) (*contract.Response, error) {
	return c.meta(ctx, func(m *TokenMeta) string { return m.Symbol })
}

func (c *Contract) Decimals(ctx contract.KContext) (*contract.Response, error) {
	return c.meta(ctx, func(m *TokenMeta) string { return strconv.Itoa(int(m.Decimals)) })
}

func (c *Contract) meta(ctx contract.KContext, field func(*TokenMeta) string) (*contract.Response, error) {
	meta, err := c.Core.Meta(ctx)
	if err != nil {
		return nil, err
	}
	return contract.OK([]byte(field(meta))), nil
}

// Owner returns the owner recorded at initialization
func (c *Contract) Owner(ctx contract.KContext) (common.Address, error) {
	meta, err := c.Core.Meta(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return meta.Owner, nil
}
