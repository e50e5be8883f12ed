package badger

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"

	"github.com/xuperchain/xcontrol/lib/storage/kvdb"
)

// BadgerDatabase define data structure of storage
type BadgerDatabase struct {
	path string
	db   *badger.DB
}

func init() {
	kvdb.Register(kvdb.KVEngineTypeBadger, NewKVDBInstance)
}

// NewKVDBInstance 按KVParameter打开badger实例
func NewKVDBInstance(param *kvdb.KVParameter) (kvdb.Database, error) {
	baseDB := new(BadgerDatabase)
	options := map[string]interface{}{
		"cache":   param.GetMemCacheSize(),
		"storage": param.GetStorageType(),
	}
	if err := baseDB.Open(param.GetDBPath(), options); err != nil {
		return nil, err
	}
	return baseDB, nil
}

// Open opens a badger instance, in memory when storage is "memory"
func (bdb *BadgerDatabase) Open(path string, options map[string]interface{}) error {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if st, _ := options["storage"].(string); st == kvdb.StorageTypeMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	if cache, ok := options["cache"].(int); ok && cache > 0 {
		opts = opts.WithBlockCacheSize(int64(cache) << 20)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	bdb.path = path
	bdb.db = db
	return nil
}

// Put puts the given key / value
func (bdb *BadgerDatabase) Put(key []byte, value []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get returns the given key if it's present.
func (bdb *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var value []byte
	err := bdb.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, kvdb.ErrKeyNotFound
	}
	return value, err
}

// Has if the given key exists
func (bdb *BadgerDatabase) Has(key []byte) (bool, error) {
	_, err := bdb.Get(key)
	if kvdb.ErrNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// Delete deletes the key
func (bdb *BadgerDatabase) Delete(key []byte) error {
	return bdb.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Close close database instance
func (bdb *BadgerDatabase) Close() error {
	return bdb.db.Close()
}

// NewBatch returns a batch written in a single transaction
func (bdb *BadgerDatabase) NewBatch() kvdb.Batch {
	return &BadgerBatch{db: bdb.db}
}

// NewIteratorWithRange returns iterator of keys in [start, limit)
func (bdb *BadgerDatabase) NewIteratorWithRange(start []byte, limit []byte) kvdb.Iterator {
	return newBadgerIterator(bdb.db, start, limit)
}

// NewIteratorWithPrefix returns iterator of keys sharing prefix
func (bdb *BadgerDatabase) NewIteratorWithPrefix(prefix []byte) kvdb.Iterator {
	return newBadgerIterator(bdb.db, prefix, prefixLimit(prefix))
}

// prefixLimit returns the smallest key greater than every key with prefix
func prefixLimit(prefix []byte) []byte {
	limit := append([]byte(nil), prefix...)
	for i := len(limit) - 1; i >= 0; i-- {
		limit[i]++
		if limit[i] != 0 {
			return limit[:i+1]
		}
	}
	return nil
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// BadgerBatch 缓存写操作，Write时在一个事务中提交
type BadgerBatch struct {
	db   *badger.DB
	ops  []batchOp
	size int
}

// Put put a key-value pair into the batch
func (b *BadgerBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
	b.size += len(value)
	return nil
}

// Delete delete a key from the batch
func (b *BadgerBatch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: append([]byte(nil), key...), delete: true})
	b.size++
	return nil
}

// Write commits the batch atomically
func (b *BadgerBatch) Write() error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			var err error
			if op.delete {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ValueSize returns the size of the written values
func (b *BadgerBatch) ValueSize() int {
	return b.size
}

// Reset reset the batch
func (b *BadgerBatch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}

// badgerIterator 在只读事务上遍历，key和value均为拷贝
type badgerIterator struct {
	txn   *badger.Txn
	iter  *badger.Iterator
	start []byte
	limit []byte

	started bool
	key     []byte
	value   []byte
	err     error
}

func newBadgerIterator(db *badger.DB, start, limit []byte) *badgerIterator {
	txn := db.NewTransaction(false)
	return &badgerIterator{
		txn:   txn,
		iter:  txn.NewIterator(badger.DefaultIteratorOptions),
		start: start,
		limit: limit,
	}
}

func (it *badgerIterator) inRange() bool {
	if !it.iter.Valid() {
		return false
	}
	return it.limit == nil || bytes.Compare(it.iter.Item().Key(), it.limit) < 0
}

func (it *badgerIterator) load() bool {
	if !it.inRange() {
		it.key, it.value = nil, nil
		return false
	}
	item := it.iter.Item()
	it.key = item.KeyCopy(nil)
	it.value, it.err = item.ValueCopy(nil)
	return it.err == nil
}

func (it *badgerIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		it.iter.Seek(it.start)
	} else {
		it.iter.Next()
	}
	return it.load()
}

func (it *badgerIterator) Key() []byte {
	return it.key
}

func (it *badgerIterator) Value() []byte {
	return it.value
}

func (it *badgerIterator) Error() error {
	return it.err
}

func (it *badgerIterator) Release() {
	it.iter.Close()
	it.txn.Discard()
}
