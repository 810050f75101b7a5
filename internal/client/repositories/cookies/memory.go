package cookies

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

type key struct{ name, path string }

type MemoryStore struct {
	mu      sync.Mutex
	cookies map[key]*http.Cookie
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cookies: make(map[key]*http.Cookie), now: time.Now}
}

func (s *MemoryStore) Set(_ context.Context, c *http.Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, live := normalize(c, s.now())
	k := key{n.Name, n.Path}
	if !live {
		delete(s.cookies, k)
		return nil
	}
	s.cookies[k] = n
	return nil
}

func (s *MemoryStore) Get(_ context.Context, name, path string) (*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{name, path}
	c, ok := s.cookies[k]
	if !ok {
		return nil, nil
	}
	if expired(c, s.now()) {
		delete(s.cookies, k)
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, name, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cookies, key{name, path})
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]*http.Cookie, 0, len(s.cookies))
	for k, c := range s.cookies {
		if expired(c, now) {
			delete(s.cookies, k)
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}
