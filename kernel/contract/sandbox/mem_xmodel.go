package sandbox

import (
	"bytes"
	"errors"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

var _ ledger.XMReader = (*MemXModel)(nil)

// MemXModel 内存版XModel，按bucket/key有序存放VersionedData
type MemXModel struct {
	tree *redblacktree.Tree
}

// XMReaderFromRWSet 用读集构造一个只读XModel，用于重放校验
func XMReaderFromRWSet(rwset *contract.RWSet) ledger.XMReader {
	m := NewMemXModel()
	for _, r := range rwset.RSet {
		m.Put(r.PureData.Bucket, r.PureData.Key, r)
	}
	return m
}

func NewMemXModel() *MemXModel {
	return &MemXModel{
		tree: redblacktree.NewWith(treeCompare),
	}
}

//读取一个key的值，返回的value就是有版本的data
func (m *MemXModel) Get(bucket string, key []byte) (*ledger.VersionedData, error) {
	v, ok := m.tree.Get(makeRawKey(bucket, key))
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*ledger.VersionedData), nil
}

func (m *MemXModel) Put(bucket string, key []byte, value *ledger.VersionedData) error {
	m.tree.Put(makeRawKey(bucket, key), value)
	return nil
}

// Len returns the number of keys across all buckets
func (m *MemXModel) Len() int {
	return m.tree.Size()
}

//扫描一个bucket中所有的kv, 调用者可以设置key区间[startKey, endKey)
func (m *MemXModel) Select(bucket string, startKey []byte, endKey []byte) (ledger.XMIterator, error) {
	if startKey != nil && endKey != nil && bytes.Compare(startKey, endKey) >= 0 {
		return nil, errors.New("bad select range")
	}
	rawStartKey := makeRawKey(bucket, startKey)
	var rawEndKey []byte
	if endKey == nil {
		rawEndKey = makeRawKey(bucket, nil)
		rawEndKey[len(rawEndKey)-1]++
	} else {
		rawEndKey = makeRawKey(bucket, endKey)
	}
	return m.snapshot(rawStartKey, rawEndKey), nil
}

// NewIterator 遍历所有bucket的数据
func (m *MemXModel) NewIterator() ledger.XMIterator {
	return m.snapshot(nil, nil)
}

// snapshot 拷贝[start, end)区间的数据，迭代期间对树的修改不影响迭代器
func (m *MemXModel) snapshot(start, end []byte) ledger.XMIterator {
	iter := m.tree.Iterator()
	var items []*ledger.VersionedData
	var keys [][]byte
	for iter.Next() {
		key := iter.Key().([]byte)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			break
		}
		keys = append(keys, key)
		items = append(items, iter.Value().(*ledger.VersionedData))
	}
	return &sliceIterator{keys: keys, values: items, idx: -1}
}

func treeCompare(a, b interface{}) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}
