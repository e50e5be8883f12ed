package mock

import (
	"sync"

	"github.com/xuperchain/xcontrol/kernel/contract/sandbox"
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

var _ ledger.XMState = (*MemState)(nil)

// MemState 内存状态，提交的数据写入MemXModel
type MemState struct {
	*sandbox.MemXModel

	mutex  sync.Mutex
	events []*ledger.ContractEvent
}

func NewMemState() *MemState {
	return &MemState{
		MemXModel: sandbox.NewMemXModel(),
	}
}

func (s *MemState) Commit(txid []byte, wset []*ledger.PureData, events []*ledger.ContractEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, w := range wset {
		s.MemXModel.Put(w.Bucket, w.Key, &ledger.VersionedData{
			RefTxid:   txid,
			RefOffset: int32(i),
			PureData: &ledger.PureData{
				Bucket: w.Bucket,
				Key:    w.Key,
				Value:  w.Value,
			},
		})
	}
	for _, e := range events {
		e.TxID = txid
	}
	s.events = append(s.events, events...)
	return nil
}

// Events returns all committed events in order
func (s *MemState) Events() []*ledger.ContractEvent {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]*ledger.ContractEvent{}, s.events...)
}
