package access

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrMissingRole     = errors.New("AccessControl: missing role")
	ErrBadConfirmation = errors.New("AccessControl: can only renounce roles for self")
)

// MissingRoleError 账户没有所需角色
type MissingRoleError struct {
	Account common.Address
	Role    Role
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("AccessControl: account %s is missing role %s", lowerHex(e.Account), RoleHex(e.Role))
}

func (e *MissingRoleError) Is(target error) bool {
	return target == ErrMissingRole
}
