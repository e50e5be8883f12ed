package contract

import (
	"strings"
	"time"
)

// ContractConfig define the config of contract manager
type ContractConfig struct {
	EnableDebugLog bool
	// 同一txid在该时间窗口内只能执行一次
	TxIDCacheExpired time.Duration
	// 单次调用的资源上限
	ResourceLimits Limits
	// 方法手续费，key为 contract:method，不区分大小写
	MethodFees map[string]int64
}

// MethodFee returns the configured fee of a kernel method, 0 if absent.
func (c *ContractConfig) MethodFee(contractName, method string) int64 {
	if c == nil || c.MethodFees == nil {
		return 0
	}
	if fee, ok := c.MethodFees[contractName+":"+method]; ok {
		return fee
	}
	return c.MethodFees[strings.ToLower(contractName+":"+method)]
}

func DefaultContractConfig() *ContractConfig {
	return &ContractConfig{
		EnableDebugLog:   true,
		TxIDCacheExpired: 10 * time.Minute,
		ResourceLimits:   MaxLimits,
		MethodFees:       map[string]int64{},
	}
}
