package local

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Config holds LocalStore settings.
type Config struct {
	GCInterval time.Duration
}

// entry holds a stored string value with an optional expiry.
type entry struct {
	data     string
	expireAt time.Time
	noExpiry bool
}

func (e *entry) expired() bool {
	return !e.noExpiry && time.Now().After(e.expireAt)
}

// LocalStore is an in-process KV store. Safe for concurrent use.
type LocalStore struct {
	kv         sync.Map // key → *entry
	gcInterval time.Duration
	stopGC     chan struct{}
}

// New creates a LocalStore and starts the background GC goroutine.
func New(cfg Config) (*LocalStore, error) {
	interval := cfg.GCInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	s := &LocalStore{
		gcInterval: interval,
		stopGC:     make(chan struct{}),
	}
	go s.runGC()
	return s, nil
}

// Close stops the background GC goroutine.
func (s *LocalStore) Close() error {
	close(s.stopGC)
	return nil
}

func (s *LocalStore) runGC() {
	ticker := time.NewTicker(s.gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.kv.Range(func(k, v interface{}) bool {
				if e, ok := v.(*entry); ok && e.expired() {
					s.kv.Delete(k)
				}
				return true
			})
		case <-s.stopGC:
			return
		}
	}
}

func (s *LocalStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.kv.Load(key)
	if !ok {
		return "", ErrNotFound
	}
	e := v.(*entry)
	if e.expired() {
		s.kv.Delete(key)
		return "", ErrNotFound
	}
	return e.data, nil
}

func (s *LocalStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := &entry{data: value}
	if ttl > 0 {
		e.expireAt = time.Now().Add(ttl)
	} else {
		e.noExpiry = true
	}
	s.kv.Store(key, e)
	return nil
}

func (s *LocalStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.kv.Delete(k)
	}
	return nil
}
