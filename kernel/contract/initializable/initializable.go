// Package initializable 提供合约实例的一次性初始化保护
//
// initialized 标记持久化在实例bucket中，initializing 标记只存在于
// 当前调用的临时bucket，调用结束后不会落盘。
package initializable

import (
	"github.com/pkg/errors"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
)

var (
	ErrAlreadyInitialized = errors.New("Initializable: contract is already initialized")
	ErrNotInitializing    = errors.New("Initializable: contract is not initializing")
)

const (
	initializedKey  = "initializable/initialized"
	initializingKey = "/initializable/initializing"

	flagTrue = "1"
)

// Initializer 执行fn，每个合约实例只能成功执行一次。
// 在初始化过程中嵌套调用时直接执行fn。
func Initializer(ctx contract.KContext, fn func() error) error {
	initializing, err := IsInitializing(ctx)
	if err != nil {
		return err
	}
	if initializing {
		return fn()
	}

	initialized, err := IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}

	if err := ctx.Put(contract.InstanceBucket(ctx), []byte(initializedKey), []byte(flagTrue)); err != nil {
		return err
	}
	if err := ctx.Put(sandbox.TransientBucket, transientKey(ctx), []byte(flagTrue)); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return ctx.Del(sandbox.TransientBucket, transientKey(ctx))
}

// OnlyInitializing 仅允许在Initializer内部调用
func OnlyInitializing(ctx contract.KContext) error {
	initializing, err := IsInitializing(ctx)
	if err != nil {
		return err
	}
	if !initializing {
		return ErrNotInitializing
	}
	return nil
}

func IsInitialized(ctx contract.KContext) (bool, error) {
	return readFlag(ctx, contract.InstanceBucket(ctx), []byte(initializedKey))
}

func IsInitializing(ctx contract.KContext) (bool, error) {
	return readFlag(ctx, sandbox.TransientBucket, transientKey(ctx))
}

func transientKey(ctx contract.KContext) []byte {
	return []byte(contract.InstanceBucket(ctx) + initializingKey)
}

func readFlag(ctx contract.KContext, bucket string, key []byte) (bool, error) {
	value, err := ctx.Get(bucket, key)
	if sandbox.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(value) == flagTrue, nil
}
