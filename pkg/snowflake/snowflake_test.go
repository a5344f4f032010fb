package snowflake

import (
	"sync"
	"testing"
)

// 基础测试：能不能生成 ID
func TestGenSessionID(t *testing.T) {
	id := GenSessionID()
	if id == "" {
		t.Fatal("expected non-empty id")
	}
}

// 唯一性测试：单线程生成
func TestGenSessionID_Unique(t *testing.T) {
	const n = 10000
	ids := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		id := GenSessionID()
		if _, exists := ids[id]; exists {
			t.Fatalf("duplicate id found: %s", id)
		}
		ids[id] = struct{}{}
	}
}

// 并发测试：多 goroutine 生成
func TestGenSessionID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
		total      = goroutines * perRoutine
	)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dups int
		ids  = make(map[string]struct{}, total)
	)

	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenSessionID()

				mu.Lock()
				if _, exists := ids[id]; exists {
					dups++
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	if dups > 0 {
		t.Fatalf("found %d duplicate ids in concurrent test", dups)
	}
}
