package sandbox

import (
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

var (
	// ErrHasDel is returned when key was marked as del
	ErrHasDel = errors.New("Key has been mark as del")
	// ErrNotFound is returned when key is not found
	ErrNotFound = errors.New("Key not found")
)

var (
	_ contract.StateSandbox = (*XMCache)(nil)
)

// XMCache data structure for XModel Cache
type XMCache struct {
	// Key: bucket_key; Value: VersionedData
	inputsCache *MemXModel // bucket -> {k1:v1, k2:v2}
	// Key: bucket_key; Value: PureData
	outputsCache *MemXModel

	model ledger.XMReader

	events []*ledger.ContractEvent
}

// NewXModelCache new an instance of XModel Cache
func NewXModelCache(model ledger.XMReader) *XMCache {
	return &XMCache{
		model:        model,
		inputsCache:  NewMemXModel(),
		outputsCache: NewMemXModel(),
	}
}

// Get 读取一个key的值，返回的value就是有版本的data
func (xc *XMCache) Get(bucket string, key []byte) ([]byte, error) {
	// Level1: get from outputsCache
	data, err := xc.getFromOuputsCache(bucket, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if err == nil {
		return data.PureData.Value, nil
	}

	// Level2: get and set from inputsCache
	verData, err := xc.getAndSetFromInputsCache(bucket, key)
	if err != nil {
		return nil, err
	}
	if IsEmptyVersionedData(verData) {
		return nil, ErrNotFound
	}
	if IsDelFlag(verData.GetPureData().GetValue()) {
		return nil, ErrHasDel
	}
	return verData.GetPureData().GetValue(), nil
}

// Level1 读取，从outputsCache中读取
func (xc *XMCache) getFromOuputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.outputsCache.Get(bucket, key)
	if err != nil {
		return nil, err
	}

	if IsDelFlag(data.PureData.Value) {
		return nil, ErrHasDel
	}
	return data, nil
}

// Level2 读取，从inputsCache中读取, 读取不到的情况下会从model里读取，并且会将内容填充到读集中
func (xc *XMCache) getAndSetFromInputsCache(bucket string, key []byte) (*ledger.VersionedData, error) {
	data, err := xc.inputsCache.Get(bucket, key)
	if err == nil {
		return data, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	data, err = xc.model.Get(bucket, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if data == nil {
		data = &ledger.VersionedData{
			PureData: &ledger.PureData{Bucket: bucket, Key: key},
		}
	}
	xc.inputsCache.Put(bucket, key, data)
	return data, nil
}

// Put put a pair of <key, value> into XModel Cache
func (xc *XMCache) Put(bucket string, key []byte, value []byte) error {
	_, err := xc.getFromOuputsCache(bucket, key)
	if err != nil && err != ErrNotFound && err != ErrHasDel {
		return err
	}

	val := &ledger.VersionedData{
		PureData: &ledger.PureData{
			Key:    key,
			Value:  value,
			Bucket: bucket,
		},
	}
	if bucket != TransientBucket {
		// put 前先强制get一下，写入的key必须出现在读集中
		if _, err := xc.getAndSetFromInputsCache(bucket, key); err != nil {
			return err
		}
	}
	return xc.outputsCache.Put(bucket, key, val)
}

// Del delete one key from outPutCache, marked its value as `DelFlag`
func (xc *XMCache) Del(bucket string, key []byte) error {
	return xc.Put(bucket, key, []byte(DelFlag))
}

// Select select all kv from a bucket, can set key range, left closed, right opend
// 结果由model和outputsCache两路合并，outputsCache优先
func (xc *XMCache) Select(bucket string, startKey []byte, endKey []byte) (contract.Iterator, error) {
	merged := redblacktree.NewWith(treeCompare)

	backendIter, err := xc.model.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	for backendIter.Next() {
		v := backendIter.Value()
		if IsEmptyVersionedData(v) {
			continue
		}
		// fill read set
		if _, err := xc.inputsCache.Get(bucket, v.PureData.Key); err == ErrNotFound {
			xc.inputsCache.Put(bucket, v.PureData.Key, v)
		}
		if IsDelFlag(v.PureData.Value) {
			continue
		}
		merged.Put(backendIter.Key(), v.PureData.Value)
	}
	if err := backendIter.Error(); err != nil {
		backendIter.Close()
		return nil, err
	}
	backendIter.Close()

	outputIter, err := xc.outputsCache.Select(bucket, startKey, endKey)
	if err != nil {
		return nil, err
	}
	defer outputIter.Close()
	for outputIter.Next() {
		v := outputIter.Value()
		if IsDelFlag(v.PureData.Value) {
			merged.Remove(outputIter.Key())
			continue
		}
		merged.Put(outputIter.Key(), v.PureData.Value)
	}

	iter := &contractIterator{idx: -1}
	it := merged.Iterator()
	for it.Next() {
		_, key, err := parseRawKey(it.Key().([]byte))
		if err != nil {
			return nil, err
		}
		iter.keys = append(iter.keys, key)
		iter.values = append(iter.values, it.Value().([]byte))
	}
	return iter, nil
}

// RWSet get read/write sets
func (xc *XMCache) RWSet() *contract.RWSet {
	return &contract.RWSet{
		RSet: xc.getReadSets(),
		WSet: xc.getWriteSets(),
	}
}

func (xc *XMCache) getReadSets() []*ledger.VersionedData {
	var readSets []*ledger.VersionedData
	iter := xc.inputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		readSets = append(readSets, iter.Value())
	}
	return readSets
}

func (xc *XMCache) getWriteSets() []*ledger.PureData {
	var writeSets []*ledger.PureData
	iter := xc.outputsCache.NewIterator()
	defer iter.Close()
	for iter.Next() {
		val := iter.Value()
		if val.PureData.Bucket == TransientBucket {
			continue
		}
		writeSets = append(writeSets, val.PureData)
	}
	return writeSets
}

// AddEvent 缓存合约事件，随写集一起提交
func (xc *XMCache) AddEvent(events ...*ledger.ContractEvent) {
	xc.events = append(xc.events, events...)
}

// Events returns the events emitted so far
func (xc *XMCache) Events() []*ledger.ContractEvent {
	return xc.events
}
