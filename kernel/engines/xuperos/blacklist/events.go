package blacklist

import (
	"github.com/xuperchain/xcontrol/kernel/contract"
)

var (
	BlacklistedEvent = contract.NewEventSpec("Blacklisted",
		contract.Indexed("account", contract.AddressType))
	UnBlacklistedEvent = contract.NewEventSpec("UnBlacklisted",
		contract.Indexed("account", contract.AddressType))
	SelfBlacklistedEvent = contract.NewEventSpec("SelfBlacklisted",
		contract.Indexed("account", contract.AddressType))
)
