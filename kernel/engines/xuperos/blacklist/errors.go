package blacklist

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var ErrBlacklistedAccount = errors.New("BlacklistedAccount")

// BlacklistedAccountError 账户在黑名单中
type BlacklistedAccountError struct {
	Account common.Address
}

func (e *BlacklistedAccountError) Error() string {
	return fmt.Sprintf("BlacklistedAccount(%s)", e.Account.Hex())
}

func (e *BlacklistedAccountError) Is(target error) bool {
	return target == ErrBlacklistedAccount
}
