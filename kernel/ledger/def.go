package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// ContractEvent 合约执行过程中产生的事件，布局与以太坊日志一致：
// Topics[0]为事件签名的keccak256，其余为indexed参数，非indexed参数ABI编码后放在Data
type ContractEvent struct {
	Contract common.Address `json:"contract"`
	Name     string         `json:"name"`
	Topics   []common.Hash  `json:"topics"`
	Data     []byte         `json:"data"`
	TxID     []byte         `json:"txid,omitempty"`
}

// Signature returns the event signature topic, or the zero hash for an anonymous event.
func (e *ContractEvent) Signature() common.Hash {
	if e == nil || len(e.Topics) == 0 {
		return common.Hash{}
	}
	return e.Topics[0]
}
