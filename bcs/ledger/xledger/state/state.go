// 统一定义状态机对外暴露功能
package state

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/gammazero/deque"
	lru "github.com/hashicorp/golang-lru"

	"github.com/xuperchain/xcontrol/bcs/ledger/xledger/state/context"
	kledger "github.com/xuperchain/xcontrol/kernel/ledger"
	"github.com/xuperchain/xcontrol/lib/logs"
	"github.com/xuperchain/xcontrol/lib/metrics"
	"github.com/xuperchain/xcontrol/lib/storage/kvdb"
	"github.com/xuperchain/xcontrol/lib/utils"
)

var _ kledger.XMState = (*State)(nil)

// State 合约状态机，提供带版本的kv读写和事件存储
type State struct {
	// 状态机运行环境上下文
	sctx *context.StateCtx
	log  logs.Logger
	db   kvdb.Database

	mutex sync.RWMutex
	// rawKey -> *VersionedData
	cache *lru.Cache
	// 最近提交的事件，超出容量从头部淘汰
	recentEvents *deque.Deque
	commitCount  int64
}

func NewState(sctx *context.StateCtx, db kvdb.Database) (*State, error) {
	if sctx == nil || db == nil {
		return nil, fmt.Errorf("create state failed because context or db is nil")
	}
	cache, err := lru.New(sctx.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create state cache failed.err:%v", err)
	}

	s := &State{
		sctx:         sctx,
		log:          sctx.XLog,
		db:           db,
		cache:        cache,
		recentEvents: deque.New(),
	}
	if s.commitCount, err = s.loadCommitCount(); err != nil {
		return nil, err
	}
	if err = s.loadRecentEvents(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get 读取一个key的值，key不存在时返回空版本的数据
func (s *State) Get(bucket string, key []byte) (*kledger.VersionedData, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rawKey := makeRawKey(bucket, key)
	if v, ok := s.cache.Get(string(rawKey)); ok {
		metrics.StateCacheCounter.WithLabelValues(s.sctx.BCName, "hit").Inc()
		return v.(*kledger.VersionedData), nil
	}
	metrics.StateCacheCounter.WithLabelValues(s.sctx.BCName, "miss").Inc()

	buf, err := s.db.Get(append([]byte(ExtUtxoTablePrefix), rawKey...))
	if kvdb.ErrNotFound(err) {
		return makeEmptyVersionedData(bucket, key), nil
	}
	if err != nil {
		return nil, err
	}
	vd := new(kledger.VersionedData)
	if err := json.Unmarshal(buf, vd); err != nil {
		return nil, fmt.Errorf("decode versioned data failed.key:%s,err:%v", rawKey, err)
	}
	s.cache.Add(string(rawKey), vd)
	return vd, nil
}

// Select 扫描bucket中[startKey, endKey)区间的数据，endKey为nil表示扫描到bucket末尾
func (s *State) Select(bucket string, startKey []byte, endKey []byte) (kledger.XMIterator, error) {
	prefix := []byte(ExtUtxoTablePrefix)
	start := append(append([]byte{}, prefix...), makeRawKey(bucket, startKey)...)
	var limit []byte
	if endKey == nil {
		limit = append(append([]byte{}, prefix...), makeRawKey(bucket, nil)...)
		limit[len(limit)-1]++
	} else {
		limit = append(append([]byte{}, prefix...), makeRawKey(bucket, endKey)...)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return &stateIterator{
		iter:      s.db.NewIteratorWithRange(start, limit),
		prefixLen: len(prefix),
	}, nil
}

// Commit 原子提交一次调用的写集和事件
func (s *State) Commit(txid []byte, wset []*kledger.PureData, events []*kledger.ContractEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	batch := s.db.NewBatch()
	cached := make(map[string]*kledger.VersionedData, len(wset))
	for offset, pd := range wset {
		rawKey := makeRawKey(pd.Bucket, pd.Key)
		putKey := append([]byte(ExtUtxoTablePrefix), rawKey...)
		if isDelFlag(pd.Value) {
			if err := batch.Delete(putKey); err != nil {
				return err
			}
			cached[string(rawKey)] = nil
			s.log.Trace("state del", "key", string(rawKey))
			continue
		}
		vd := &kledger.VersionedData{
			PureData:  pd,
			RefTxid:   txid,
			RefOffset: int32(offset),
		}
		buf, err := json.Marshal(vd)
		if err != nil {
			return err
		}
		if err := batch.Put(putKey, buf); err != nil {
			return err
		}
		cached[string(rawKey)] = vd
		s.log.Trace("state put", "key", string(rawKey), "version", GetVersion(vd))
	}

	for _, e := range events {
		e.TxID = txid
	}
	if len(events) > 0 {
		buf, err := json.Marshal(events)
		if err != nil {
			return err
		}
		if err := batch.Put(append([]byte(EventTablePrefix), txid...), buf); err != nil {
			return err
		}
	}
	countKey := []byte(MetaTablePrefix + metaCommitCountKey)
	if err := batch.Put(countKey, []byte(strconv.FormatInt(s.commitCount+1, 10))); err != nil {
		return err
	}

	if err := batch.Write(); err != nil {
		s.log.Warn("state commit failed", "txid", utils.F(txid), "err", err)
		return err
	}
	s.commitCount++

	for k, v := range cached {
		if v == nil {
			s.cache.Remove(k)
			continue
		}
		s.cache.Add(k, v)
	}
	s.pushEvents(events)
	metrics.StateCommitCounter.WithLabelValues(s.sctx.BCName).Inc()
	metrics.StateEventCounter.WithLabelValues(s.sctx.BCName).Add(float64(len(events)))
	s.log.Debug("state commit", "txid", utils.F(txid), "writes", len(wset), "events", len(events))
	return nil
}

// QueryEvents 查询某次提交产生的事件
func (s *State) QueryEvents(txid []byte) ([]*kledger.ContractEvent, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	buf, err := s.db.Get(append([]byte(EventTablePrefix), txid...))
	if kvdb.ErrNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var events []*kledger.ContractEvent
	if err := json.Unmarshal(buf, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// RecentEvents 返回最近的n个事件，按提交顺序排列
func (s *State) RecentEvents(n int) []*kledger.ContractEvent {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.recentEvents.Len()
	if n <= 0 || n > total {
		n = total
	}
	events := make([]*kledger.ContractEvent, 0, n)
	for i := total - n; i < total; i++ {
		events = append(events, s.recentEvents.At(i).(*kledger.ContractEvent))
	}
	return events
}

// CommitCount 已提交的调用数
func (s *State) CommitCount() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.commitCount
}

func (s *State) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cache.Purge()
	s.recentEvents.Clear()
	return s.db.Close()
}

func (s *State) pushEvents(events []*kledger.ContractEvent) {
	for _, e := range events {
		s.recentEvents.PushBack(e)
		if s.recentEvents.Len() > s.sctx.EventHistory {
			s.recentEvents.PopFront()
		}
	}
}

// loadRecentEvents 按txid顺序回放已持久化的事件
func (s *State) loadRecentEvents() error {
	iter := s.db.NewIteratorWithPrefix([]byte(EventTablePrefix))
	defer iter.Release()
	for iter.Next() {
		var events []*kledger.ContractEvent
		if err := json.Unmarshal(iter.Value(), &events); err != nil {
			return fmt.Errorf("load events failed.key:%s,err:%v", iter.Key(), err)
		}
		s.pushEvents(events)
	}
	return iter.Error()
}

func (s *State) loadCommitCount() (int64, error) {
	buf, err := s.db.Get([]byte(MetaTablePrefix + metaCommitCountKey))
	if kvdb.ErrNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(buf), 10, 64)
}

// stateIterator 把kvdb迭代器转换成XMIterator，Key为bucket/key
type stateIterator struct {
	iter      kvdb.Iterator
	prefixLen int
	value     *kledger.VersionedData
	err       error
}

func (it *stateIterator) Next() bool {
	if it.err != nil || !it.iter.Next() {
		return false
	}
	vd := new(kledger.VersionedData)
	if err := json.Unmarshal(it.iter.Value(), vd); err != nil {
		it.err = err
		return false
	}
	it.value = vd
	return true
}

func (it *stateIterator) Key() []byte {
	key := it.iter.Key()
	if len(key) < it.prefixLen {
		return nil
	}
	return key[it.prefixLen:]
}

func (it *stateIterator) Value() *kledger.VersionedData {
	return it.value
}

func (it *stateIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.iter.Error()
}

func (it *stateIterator) Close() {
	it.iter.Release()
}
