package contract

import (
	"github.com/pkg/errors"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrMethodNotFound   = errors.New("kernel method not found")
	ErrTxDuplicate      = errors.New("duplicate transaction id")
	ErrRecursiveCall    = errors.New("recursive contract call")
	ErrLimitExceeded    = errors.New("resource limit exceeded")
)
