package services

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockSnapshotArchive is an in-memory SnapshotArchive for tests and local runs
type MockSnapshotArchive struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMockSnapshotArchive creates an empty mock archive
func NewMockSnapshotArchive() *MockSnapshotArchive {
	return &MockSnapshotArchive{
		objects: make(map[string][]byte),
	}
}

// Archive stores a copy of body in memory
func (m *MockSnapshotArchive) Archive(ctx context.Context, name string, body []byte) (string, error) {
	key := SnapshotKey(name, time.Now())

	content := make([]byte, len(body))
	copy(content, body)

	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()

	return key, nil
}

// PresignedURL returns a fake URL for a stored key
func (m *MockSnapshotArchive) PresignedURL(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("snapshot not found in mock archive: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// Objects returns a copy of everything archived (for testing assertions)
func (m *MockSnapshotArchive) Objects() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		objects[k] = v
	}
	return objects
}
