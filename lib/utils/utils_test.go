package utils

import (
	"os"
	"strings"
	"sync"
	"testing"
)

func TestFileIsExist(t *testing.T) {
	if !FileIsExist(os.TempDir()) {
		t.Fatal("temp dir should exist")
	}
	if FileIsExist("/not/exist/xcontrol") {
		t.Fatal("unexpected exist")
	}
}

// 并发生成logid，冲突概率足够低
func TestGenLogId(t *testing.T) {
	const total = 2000
	var mu sync.Mutex
	ids := make(map[string]struct{}, total)
	wg := &sync.WaitGroup{}
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := GenLogId()
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(ids) < total*99/100 {
		t.Fatalf("too many repeated log id: %d/%d", len(ids), total)
	}
}

func TestGetFuncCall(t *testing.T) {
	file, fc := GetFuncCall(1)
	if !strings.HasPrefix(file, "utils_test.go:") {
		t.Fatalf("unexpected file: %s", file)
	}
	if !strings.Contains(fc, "TestGetFuncCall") {
		t.Fatalf("unexpected func: %s", fc)
	}
}

func TestF(t *testing.T) {
	if F([]byte{0xab, 0x01}) != "ab01" {
		t.Fatal("hex mismatch")
	}
	if len(GenTxId()) == 0 {
		t.Fatal("empty txid")
	}
}
