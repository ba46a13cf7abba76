package preload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type mapFetcher struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls []string
}

func (m *mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	b, ok := m.data[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

type result struct {
	url string
	err error
}

func TestPreload_ReportsOutcome(t *testing.T) {
	f := &mapFetcher{data: map[string][]byte{"/assets/a.jpg": []byte("a")}}
	results := make(chan result, 2)
	p := New(context.Background(), f, func(url string, err error) {
		results <- result{url, err}
	}, nil)

	p.Preload("/assets/a.jpg")
	p.Preload("/assets/missing.jpg")

	got := map[string]error{}
	for i := 0; i < 2; i++ {
		select {
		case r := <-results:
			got[r.url] = r.err
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for preload")
		}
	}
	if err := got["/assets/a.jpg"]; err != nil {
		t.Errorf("a.jpg: unexpected error %v", err)
	}
	if err, ok := got["/assets/missing.jpg"]; !ok || err == nil {
		t.Errorf("missing.jpg: expected failure, got %v (reported=%v)", err, ok)
	}
}

func TestPreload_NilDone(t *testing.T) {
	f := &mapFetcher{data: map[string][]byte{}}
	p := New(context.Background(), f, nil, nil)
	p.Preload("/assets/x.jpg")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		n := len(f.calls)
		f.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("fetch never happened")
}
