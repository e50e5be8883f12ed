package xtoken

import (
	"github.com/pkg/errors"
)

var (
	ErrTransferExceedsBalance = errors.New("ERC20: transfer amount exceeds balance")
	ErrBurnExceedsBalance     = errors.New("ERC20: burn amount exceeds balance")
	ErrInsufficientAllowance  = errors.New("ERC20: insufficient allowance")
	ErrTransferFromZero       = errors.New("ERC20: transfer from the zero address")
	ErrTransferToZero         = errors.New("ERC20: transfer to the zero address")
	ErrMintToZero             = errors.New("ERC20: mint to the zero address")
	ErrBurnFromZero           = errors.New("ERC20: burn from the zero address")
	ErrApproveFromZero        = errors.New("ERC20: approve from the zero address")
	ErrApproveToZero          = errors.New("ERC20: approve to the zero address")
	ErrSupplyOverflow         = errors.New("ERC20: total supply overflows uint256")
	ErrNotOwner               = errors.New("XToken: caller is not the owner")
	ErrNotInitialized         = errors.New("XToken: token not initialized")

	ErrOperationFailed = errors.New("SafeERC20: ERC20 operation did not succeed")
)
