package metrics

import (
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "xcontrol"

	SubsystemEngine   = "engine"
	SubsystemContract = "contract"
	SubsystemState    = "state"

	LabelBCName         = "bcname"
	LabelContractName   = "contract_name"
	LabelContractMethod = "contract_method"
	LabelContractCode   = "contract_code"

	LabelLockType = "lock"

	LabelCacheResult = "result"
)

// common
var (
	// 锁
	LockCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemEngine,
			Name:      "lock_total",
			Help:      "Total number of lock.",
		},
		[]string{LabelBCName, LabelLockType})
)

// contract
var (
	ContractInvokeCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_total",
			Help:      "Total number of invoke contract.",
		},
		[]string{LabelBCName, LabelContractName, LabelContractMethod, LabelContractCode})
	ContractInvokeHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_seconds",
			Help:      "Histogram of invoke contract latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelBCName, LabelContractName, LabelContractMethod})
)

// state
var (
	StateCommitCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "commit_total",
			Help:      "Total number of committed invocations.",
		},
		[]string{LabelBCName})
	StateEventCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "event_total",
			Help:      "Total number of committed contract events.",
		},
		[]string{LabelBCName})
	StateCacheCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "cache_total",
			Help:      "Total number of state cache lookups.",
		},
		[]string{LabelBCName, LabelCacheResult})
)

var registerOnce sync.Once

// RegisterMetrics 注册到默认registry，重复调用只生效一次
func RegisterMetrics() {
	registerOnce.Do(func() {
		// common
		prom.MustRegister(LockCounter)
		// contract
		prom.MustRegister(ContractInvokeCounter)
		prom.MustRegister(ContractInvokeHistogram)
		// state
		prom.MustRegister(StateCommitCounter)
		prom.MustRegister(StateEventCounter)
		prom.MustRegister(StateCacheCounter)
	})
}
