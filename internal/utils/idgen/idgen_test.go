package idgen

import (
	"strings"
	"sync"
	"testing"
)

func TestNewGeneratesPrefixedIDs(t *testing.T) {
	id := New(PrefixUser)
	if !strings.HasPrefix(id, "usr_") {
		t.Fatalf("expected usr_ prefix, got %q", id)
	}
	if id != strings.ToLower(id) {
		t.Fatalf("expected lowercase id, got %q", id)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(PrefixVideo)
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestNewIsSafeForConcurrentUse(t *testing.T) {
	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := New(PrefixLike)
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id generated: %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d unique ids, got %d", workers*perWorker, len(seen))
	}
}

func TestIsValid(t *testing.T) {
	id := New(PrefixTweet)
	if !IsValid(PrefixTweet, id) {
		t.Fatalf("expected %q to be valid", id)
	}
	if IsValid(PrefixVideo, id) {
		t.Fatalf("expected %q to be invalid for video prefix", id)
	}
	if IsValid(PrefixTweet, "twt_") {
		t.Fatal("expected empty ulid part to be invalid")
	}
	if IsValid(PrefixTweet, "not-an-id") {
		t.Fatal("expected malformed id to be invalid")
	}
}
