package xtoken

import (
	"github.com/xuperchain/xcontrol/kernel/contract"
)

var (
	TransferEvent = contract.NewEventSpec("Transfer",
		contract.Indexed("from", contract.AddressType),
		contract.Indexed("to", contract.AddressType),
		contract.NonIndexed("value", contract.Uint256Type))
	ApprovalEvent = contract.NewEventSpec("Approval",
		contract.Indexed("owner", contract.AddressType),
		contract.Indexed("spender", contract.AddressType),
		contract.NonIndexed("value", contract.Uint256Type))
)
