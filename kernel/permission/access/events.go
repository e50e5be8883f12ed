package access

import (
	"github.com/xuperchain/xcontrol/kernel/contract"
)

var (
	RoleGrantedEvent = contract.NewEventSpec("RoleGranted",
		contract.Indexed("role", contract.Bytes32Type),
		contract.Indexed("account", contract.AddressType),
		contract.Indexed("sender", contract.AddressType))
	RoleRevokedEvent = contract.NewEventSpec("RoleRevoked",
		contract.Indexed("role", contract.Bytes32Type),
		contract.Indexed("account", contract.AddressType),
		contract.Indexed("sender", contract.AddressType))
	RoleAdminChangedEvent = contract.NewEventSpec("RoleAdminChanged",
		contract.Indexed("role", contract.Bytes32Type),
		contract.Indexed("previousAdminRole", contract.Bytes32Type),
		contract.Indexed("newAdminRole", contract.Bytes32Type))
)
