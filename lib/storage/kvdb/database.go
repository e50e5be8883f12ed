package kvdb

import (
	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Get when the key is absent, whatever the engine
var ErrKeyNotFound = errors.New("kvdb: key not found")

// ErrNotFound reports whether err means the key is absent
func ErrNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Database 存储引擎需要实现的接口
type Database interface {
	Open(path string, options map[string]interface{}) error
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Close() error
	NewBatch() Batch
	NewIteratorWithRange(start []byte, limit []byte) Iterator
	NewIteratorWithPrefix(prefix []byte) Iterator
}

// Batch 批量写，Write之前的操作对外不可见，Write原子生效
type Batch interface {
	ValueSize() int
	Write() error
	Reset()
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Iterator 按key有序遍历，使用完毕必须Release
type Iterator interface {
	Key() []byte
	Value() []byte
	Next() bool
	Error() error
	Release()
}
