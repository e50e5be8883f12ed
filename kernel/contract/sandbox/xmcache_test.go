package sandbox

import (
	"sort"
	"testing"

	"github.com/xuperchain/xcontrol/kernel/ledger"
)

func TestXMCachePutGet(t *testing.T) {
	testCases := []struct {
		Bucket string
		Key    string
		Value  string
		Op     string
	}{
		{"b1", "k1", "v1", "put"},
		{"b1", "k1", "v1", "get"},
		{"b1", "k1", "v2", "put"},
		{"b1", "k1", "v2", "get"},
	}
	store := NewMemXModel()

	mc := NewXModelCache(store)
	for _, test := range testCases {
		switch test.Op {
		case "put":
			err := mc.Put(test.Bucket, []byte(test.Key), []byte(test.Value))
			if err != nil {
				t.Fatal(err)
			}
		case "get":
			v, err := mc.Get(test.Bucket, []byte(test.Key))
			if err != nil {
				t.Fatal(err)
			}
			if string(v) != test.Value {
				t.Errorf("expect %s got %s", test.Value, v)
			}
		}
	}
	// 底层状态不受影响
	if store.Len() != 0 {
		t.Fatalf("backend modified: %d keys", store.Len())
	}
}

func TestXMCacheDel(t *testing.T) {
	store := NewMemXModel()
	putVersionedData(store, "b", []byte("k"), []byte("v"))
	mc := NewXModelCache(store)

	if err := mc.Del("b", []byte("k")); err != nil {
		t.Fatal(err)
	}
	_, err := mc.Get("b", []byte("k"))
	if !IsNotFound(err) {
		t.Fatalf("expect not found after del, got %v", err)
	}
	if _, err := mc.Get("b", []byte("missing")); !IsNotFound(err) {
		t.Fatalf("expect not found, got %v", err)
	}

	rwset := mc.RWSet()
	if len(rwset.WSet) != 1 || !IsDelFlag(rwset.WSet[0].Value) {
		t.Fatalf("unexpected write set: %+v", rwset.WSet)
	}
	if len(rwset.RSet) != 2 {
		t.Fatalf("expect 2 reads got %d", len(rwset.RSet))
	}
}

func TestXMCacheIterator(t *testing.T) {
	const N = 10
	const prefix = "key_"
	keys := randKeys(N, prefix)

	state := NewMemXModel()
	for i := 0; i < N/2; i++ {
		putVersionedData(state, "test", []byte(keys[i]), []byte(keys[i]))
	}
	mc := NewXModelCache(state)
	for i := N / 2; i < N; i++ {
		mc.Put("test", []byte(keys[i]), []byte(keys[i]))
	}
	// 删除一个已提交的key
	mc.Del("test", []byte(keys[0]))
	deleted := keys[0]

	sort.Strings(keys)

	iter, err := mc.Select("test", []byte(prefix), []byte(prefix+"\xff"))
	if err != nil {
		t.Fatal(err)
	}
	defer iter.Close()

	i := 0
	for iter.Next() {
		if keys[i] == deleted {
			i++
		}
		if string(iter.Key()) != keys[i] {
			t.Fatalf("not equal: %s %s", keys[i], iter.Key())
		}
		if string(iter.Value()) != keys[i] {
			t.Fatalf("value not equal: %s %s", keys[i], iter.Value())
		}
		i++
	}
	if i < N-1 {
		t.Fatalf("expect iter %d iterms got %d", N-1, i)
	}
}

func TestXMCacheEvents(t *testing.T) {
	mc := NewXModelCache(NewMemXModel())
	mc.AddEvent(&ledger.ContractEvent{Name: "a"}, &ledger.ContractEvent{Name: "b"})
	if len(mc.Events()) != 2 || mc.Events()[1].Name != "b" {
		t.Fatalf("unexpected events: %v", mc.Events())
	}
}

func TestXMReaderFromRWSet(t *testing.T) {
	store := NewMemXModel()
	putVersionedData(store, "b", []byte("k"), []byte("v"))
	mc := NewXModelCache(store)
	mc.Get("b", []byte("k"))

	reader := XMReaderFromRWSet(mc.RWSet())
	v, err := reader.Get("b", []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(v.PureData.Value) != "v" {
		t.Fatalf("expect v got %s", v.PureData.Value)
	}
}
