// Package access 实现基于角色的权限层级
//
// 每个角色有一个管理角色，持有管理角色的账户可以授予和撤销该角色。
// 角色和成员关系保存在合约实例自己的bucket中。
package access

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Role 角色标识，为角色名的keccak256
type Role = common.Hash

var (
	// DefaultAdminRole 根角色，未设置管理角色的角色默认由它管理
	DefaultAdminRole = Role{}

	OwnerRole = RoleOf("OWNER_ROLE")
)

// RoleOf returns keccak256(name)
func RoleOf(name string) Role {
	return crypto.Keccak256Hash([]byte(name))
}

// RoleHex 角色的0x十六进制表示
func RoleHex(role Role) string {
	return role.Hex()
}

func lowerHex(account common.Address) string {
	return strings.ToLower(account.Hex())
}
