package xtoken

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/initializable"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
)

// Core ERC20余额和授权的状态操作，不做调用者鉴权
type Core struct{}

func NewCore() *Core {
	return &Core{}
}

// Init 只能在初始化过程中调用
func (c *Core) Init(ctx contract.KContext, meta *TokenMeta) error {
	if err := initializable.OnlyInitializing(ctx); err != nil {
		return err
	}
	value, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "marshal token meta failed")
	}
	return ctx.Put(contract.InstanceBucket(ctx), []byte(KeyOfMeta()), value)
}

func (c *Core) Meta(ctx contract.KContext) (*TokenMeta, error) {
	value, err := ctx.Get(contract.InstanceBucket(ctx), []byte(KeyOfMeta()))
	if sandbox.IsNotFound(err) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, errors.Wrap(err, "get token meta failed")
	}
	meta := new(TokenMeta)
	if err := json.Unmarshal(value, meta); err != nil {
		return nil, errors.Wrap(err, "token meta unmarshal failed")
	}
	return meta, nil
}

// RequireOwner 校验直接调用者为token owner
func (c *Core) RequireOwner(ctx contract.KContext) error {
	meta, err := c.Meta(ctx)
	if err != nil {
		return err
	}
	if ctx.Caller() != meta.Owner {
		return ErrNotOwner
	}
	return nil
}

func (c *Core) BalanceOf(ctx contract.KContext, account common.Address) (*big.Int, error) {
	return c.getAmount(ctx, KeyOfBalance(account))
}

func (c *Core) TotalSupply(ctx contract.KContext) (*big.Int, error) {
	return c.getAmount(ctx, KeyOfTotalSupply())
}

func (c *Core) Allowance(ctx contract.KContext, owner, spender common.Address) (*big.Int, error) {
	return c.getAmount(ctx, KeyOfAllowance(owner, spender))
}

func (c *Core) Transfer(ctx contract.KContext, from, to common.Address, amount *big.Int) error {
	if from == (common.Address{}) {
		return ErrTransferFromZero
	}
	if to == (common.Address{}) {
		return ErrTransferToZero
	}
	fromBal, err := c.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrTransferExceedsBalance
	}
	if err := c.saveAmount(ctx, KeyOfBalance(from), new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	// from 和 to 相同时需要重新读取
	toBal, err := c.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := c.saveAmount(ctx, KeyOfBalance(to), new(big.Int).Add(toBal, amount)); err != nil {
		return err
	}
	return TransferEvent.Emit(ctx, from, to, amount)
}

func (c *Core) Mint(ctx contract.KContext, to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrMintToZero
	}
	supply, err := c.TotalSupply(ctx)
	if err != nil {
		return err
	}
	// 余额不超过总量，总量不超过uint256即可
	newSupply := new(big.Int).Add(supply, amount)
	if newSupply.Cmp(math.MaxBig256) > 0 {
		return ErrSupplyOverflow
	}
	if err := c.saveAmount(ctx, KeyOfTotalSupply(), newSupply); err != nil {
		return err
	}
	toBal, err := c.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := c.saveAmount(ctx, KeyOfBalance(to), new(big.Int).Add(toBal, amount)); err != nil {
		return err
	}
	return TransferEvent.Emit(ctx, common.Address{}, to, amount)
}

func (c *Core) Burn(ctx contract.KContext, from common.Address, amount *big.Int) error {
	if from == (common.Address{}) {
		return ErrBurnFromZero
	}
	fromBal, err := c.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrBurnExceedsBalance
	}
	if err := c.saveAmount(ctx, KeyOfBalance(from), new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	supply, err := c.TotalSupply(ctx)
	if err != nil {
		return err
	}
	if err := c.saveAmount(ctx, KeyOfTotalSupply(), new(big.Int).Sub(supply, amount)); err != nil {
		return err
	}
	return TransferEvent.Emit(ctx, from, common.Address{}, amount)
}

func (c *Core) Approve(ctx contract.KContext, owner, spender common.Address, amount *big.Int) error {
	if owner == (common.Address{}) {
		return ErrApproveFromZero
	}
	if spender == (common.Address{}) {
		return ErrApproveToZero
	}
	if err := c.saveAmount(ctx, KeyOfAllowance(owner, spender), amount); err != nil {
		return err
	}
	return ApprovalEvent.Emit(ctx, owner, spender, amount)
}

// SpendAllowance 扣减授权额度，额度为uint256最大值时视为无限授权
func (c *Core) SpendAllowance(ctx contract.KContext, owner, spender common.Address, amount *big.Int) error {
	current, err := c.Allowance(ctx, owner, spender)
	if err != nil {
		return err
	}
	if current.Cmp(math.MaxBig256) == 0 {
		return nil
	}
	if current.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	return c.Approve(ctx, owner, spender, new(big.Int).Sub(current, amount))
}

func (c *Core) getAmount(ctx contract.KContext, key string) (*big.Int, error) {
	value, err := ctx.Get(contract.InstanceBucket(ctx), []byte(key))
	if sandbox.IsNotFound(err) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s failed", key)
	}
	amount, ok := new(big.Int).SetString(string(value), 10)
	if !ok {
		return nil, errors.Errorf("%s bigInt set string failed", key)
	}
	return amount, nil
}

func (c *Core) saveAmount(ctx contract.KContext, key string, amount *big.Int) error {
	err := ctx.Put(contract.InstanceBucket(ctx), []byte(key), []byte(amount.String()))
	if err != nil {
		return errors.Wrapf(err, "save %s failed", key)
	}
	return nil
}
