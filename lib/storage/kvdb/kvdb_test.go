package kvdb_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xcontrol/lib/storage/kvdb"
	_ "github.com/xuperchain/xcontrol/lib/storage/kvdb/badger"
	_ "github.com/xuperchain/xcontrol/lib/storage/kvdb/leveldb"
)

func openEngines(t *testing.T) map[string]kvdb.Database {
	dbs := make(map[string]kvdb.Database)
	for _, engine := range []string{kvdb.KVEngineTypeLDB, kvdb.KVEngineTypeBadger} {
		for _, st := range []string{kvdb.StorageTypeSingle, kvdb.StorageTypeMemory} {
			db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
				DBPath:                t.TempDir(),
				KVEngineType:          engine,
				StorageType:           st,
				MemCacheSize:          16,
				FileHandlersCacheSize: 16,
			})
			require.NoError(t, err, "%s/%s", engine, st)
			dbs[engine+"/"+st] = db
		}
	}
	return dbs
}

func TestEngines(t *testing.T) {
	for name, db := range openEngines(t) {
		t.Run(name, func(t *testing.T) {
			defer db.Close()

			_, err := db.Get([]byte("missing"))
			require.True(t, kvdb.ErrNotFound(err))

			require.NoError(t, db.Put([]byte("k"), []byte("v")))
			v, err := db.Get([]byte("k"))
			require.NoError(t, err)
			require.Equal(t, []byte("v"), v)
			ok, err := db.Has([]byte("k"))
			require.NoError(t, err)
			require.True(t, ok)

			require.NoError(t, db.Delete([]byte("k")))
			ok, err = db.Has([]byte("k"))
			require.NoError(t, err)
			require.False(t, ok)

			batch := db.NewBatch()
			for i := 0; i < 5; i++ {
				require.NoError(t, batch.Put([]byte(fmt.Sprintf("p/%d", i)), []byte{byte(i)}))
			}
			require.NoError(t, batch.Put([]byte("q/0"), []byte("x")))
			require.NoError(t, batch.Delete([]byte("p/3")))
			// 提交前不可见
			_, err = db.Get([]byte("p/0"))
			require.True(t, kvdb.ErrNotFound(err))
			require.NoError(t, batch.Write())
			require.Equal(t, 7, batch.ValueSize())

			var keys []string
			iter := db.NewIteratorWithPrefix([]byte("p/"))
			for iter.Next() {
				keys = append(keys, string(iter.Key()))
			}
			require.NoError(t, iter.Error())
			iter.Release()
			require.Equal(t, []string{"p/0", "p/1", "p/2", "p/4"}, keys)

			keys = keys[:0]
			iter = db.NewIteratorWithRange([]byte("p/1"), []byte("p/4"))
			for iter.Next() {
				keys = append(keys, string(iter.Key()))
			}
			iter.Release()
			require.Equal(t, []string{"p/1", "p/2"}, keys)
		})
	}
}

func TestCreateUnknownEngine(t *testing.T) {
	_, err := kvdb.CreateKVInstance(&kvdb.KVParameter{KVEngineType: "rocksdb"})
	require.Error(t, err)
}
