package contract

import (
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

const (
	// StatusOK is used when contract successfully ends.
	StatusOK = 200
	// StatusErrorThreshold is the status dividing line for the normal operation of the contract
	StatusErrorThreshold = 400
	// StatusError is used when contract fails.
	StatusError = 500
)

// Response is the result of the contract run
type Response struct {
	// Status 用于反映合约的运行结果的错误码
	Status int `json:"status"`
	// Message 用于携带一些有用的debug信息
	Message string `json:"message"`
	// Data 字段用于存储合约执行的结果
	Body []byte `json:"body"`
}

// HasError returns true when the status is beyond the error threshold
func (r *Response) HasError() bool {
	return r.Status >= StatusErrorThreshold
}

// Limits describes the resources consumed or allowed by a contract call
type Limits struct {
	Cpu    int64 `json:"cpu"`
	Memory int64 `json:"memory"`
	Disk   int64 `json:"disk"`
	XFee   int64 `json:"fee"`
}

// Add accumulates l1 into l
func (l *Limits) Add(l1 Limits) *Limits {
	l.Cpu += l1.Cpu
	l.Memory += l1.Memory
	l.Disk += l1.Disk
	l.XFee += l1.XFee
	return l
}

// Exceed returns true if any field of l is beyond l1
func (l Limits) Exceed(l1 Limits) bool {
	return l.Cpu > l1.Cpu ||
		l.Memory > l1.Memory ||
		l.Disk > l1.Disk ||
		l.XFee > l1.XFee
}

// MaxLimits is the default resource limit of an invocation
var MaxLimits = Limits{
	Cpu:    maxResourceLimit,
	Memory: maxResourceLimit,
	Disk:   maxResourceLimit,
	XFee:   maxResourceLimit,
}

const maxResourceLimit = 0xFFFFFFFF

// Receipt is the outcome of a committed invocation
type Receipt struct {
	TxID         []byte                  `json:"txid"`
	Response     *Response               `json:"response"`
	Events       []*ledger.ContractEvent `json:"events"`
	ResourceUsed Limits                  `json:"resourceUsed"`
}
