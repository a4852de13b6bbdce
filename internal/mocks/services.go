package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lyricverse-api/internal/models"
)

// MockCache is an in-memory cache.Cache that records invalidations
type MockCache struct {
	mu          sync.Mutex
	Entries     map[string][]byte
	Deleted     []string
	SetCalls    int
	GetCalls    int
	DeleteCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{Entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	value, ok := m.Entries[key]
	return value, ok
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.Entries[key] = value
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	for _, key := range keys {
		delete(m.Entries, key)
		m.Deleted = append(m.Deleted, key)
	}
}

func (m *MockCache) Close() error { return nil }

// WasDeleted reports whether a key was invalidated at least once
func (m *MockCache) WasDeleted(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.Deleted {
		if k == key {
			return true
		}
	}
	return false
}

// MockBlobStore is an in-memory storage.BlobStore
type MockBlobStore struct {
	mu        sync.Mutex
	Blobs     map[string][]byte
	UploadErr error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Blobs: make(map[string][]byte)}
}

func (m *MockBlobStore) Upload(ctx context.Context, path string, r io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.Blobs[path] = data
	return m.URL(path), nil
}

func (m *MockBlobStore) URL(path string) string {
	return "http://blob.test/uploads/" + strings.TrimPrefix(path, "/")
}

// MockOAuthProvider is an auth.Provider returning a fixed identity
type MockOAuthProvider struct {
	Identity    models.Identity
	ExchangeErr error
	Exchanged   []string
}

func (m *MockOAuthProvider) AuthURL(state string) string {
	return "https://oauth.test/consent?state=" + state
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (models.Identity, error) {
	m.Exchanged = append(m.Exchanged, code)
	if m.ExchangeErr != nil {
		return models.Identity{}, m.ExchangeErr
	}
	if code == "" {
		return models.Identity{}, fmt.Errorf("empty authorization code")
	}
	return m.Identity, nil
}
