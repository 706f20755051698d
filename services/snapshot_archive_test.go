package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Unix(1700000000, 0)
	assert.Equal(t, "snapshots/1700000000_dashboard.json", SnapshotKey("dashboard", at))
}

func TestMockSnapshotArchive(t *testing.T) {
	archive := NewMockSnapshotArchive()
	body := []byte(`{"totalOrders":3}`)

	key, err := archive.Archive(context.Background(), "dashboard", body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "snapshots/"))

	// Stored content is a copy
	body[2] = 'X'
	assert.Equal(t, `{"totalOrders":3}`, string(archive.Objects()[key]))

	url, err := archive.PresignedURL(context.Background(), key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	_, err = archive.PresignedURL(context.Background(), "snapshots/missing.json")
	assert.Error(t, err)
}
