package sandbox

import (
	"bytes"

	"github.com/xuperchain/xcontrol/kernel/contract"
	"github.com/xuperchain/xcontrol/kernel/ledger"
)

// sliceIterator 遍历一组已排好序的数据，key为rawKey
type sliceIterator struct {
	keys   [][]byte
	values []*ledger.VersionedData
	idx    int
}

func (s *sliceIterator) Next() bool {
	if s.idx+1 >= len(s.keys) {
		s.idx = len(s.keys)
		return false
	}
	s.idx++
	return true
}

func (s *sliceIterator) Key() []byte {
	if s.idx < 0 || s.idx >= len(s.keys) {
		return nil
	}
	return s.keys[s.idx]
}

func (s *sliceIterator) Value() *ledger.VersionedData {
	if s.idx < 0 || s.idx >= len(s.values) {
		return nil
	}
	return s.values[s.idx]
}

func (s *sliceIterator) Error() error {
	return nil
}

func (s *sliceIterator) Close() {
	s.keys = nil
	s.values = nil
}

// contractIterator 把合并后的结果转换成contract.Iterator，key为去掉bucket前缀的原始key
type contractIterator struct {
	keys   [][]byte
	values [][]byte
	idx    int
	err    error
}

func (c *contractIterator) Next() bool {
	if c.err != nil || c.idx+1 >= len(c.keys) {
		c.idx = len(c.keys)
		return false
	}
	c.idx++
	return true
}

func (c *contractIterator) Key() []byte {
	if c.idx < 0 || c.idx >= len(c.keys) {
		return nil
	}
	return c.keys[c.idx]
}

func (c *contractIterator) Value() []byte {
	if c.idx < 0 || c.idx >= len(c.values) {
		return nil
	}
	return c.values[c.idx]
}

func (c *contractIterator) Error() error {
	return c.err
}

func (c *contractIterator) Close() {}

var _ contract.Iterator = (*contractIterator)(nil)

// compareBytes like bytes.Compare but treats nil as max value
func compareBytes(k1, k2 []byte) int {
	if k1 == nil && k2 == nil {
		return 0
	}
	if k1 == nil {
		return 1
	}
	if k2 == nil {
		return -1
	}
	return bytes.Compare(k1, k2)
}
