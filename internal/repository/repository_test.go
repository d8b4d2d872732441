package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/config"
)

func newTestRepo(t *testing.T) DetectionRepository {
	t.Helper()
	db, err := Open(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"}, false)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return New(db, zap.NewNop())
}

func seedRecords(t *testing.T, repo DetectionRepository, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &DetectionRecord{
			ID:          fmt.Sprintf("id-%02d", i),
			RequestID:   fmt.Sprintf("req-%02d", i),
			Text:        fmt.Sprintf("text %d", i),
			TextPreview: fmt.Sprintf("text %d", i),
			Score:       float64(i),
			RiskLevel:   "low",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 1)

	record, err := repo.GetByID(context.Background(), "id-00")
	require.NoError(t, err)
	assert.Equal(t, "req-00", record.RequestID)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 15)

	t.Run("full first page", func(t *testing.T) {
		records, total, err := repo.List(context.Background(), 1, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 15, total)
		assert.Len(t, records, 10)
	})

	t.Run("partial last page", func(t *testing.T) {
		records, total, err := repo.List(context.Background(), 2, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 15, total)
		assert.Len(t, records, 5)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		records, total, err := repo.List(context.Background(), 3, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 15, total)
		assert.Empty(t, records)
	})

	t.Run("sorts by score ascending", func(t *testing.T) {
		records, _, err := repo.List(context.Background(), 1, 3, "score", "asc")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "id-00", records[0].ID)
		assert.Equal(t, "id-01", records[1].ID)
	})
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 2)

	t.Run("removes an existing record", func(t *testing.T) {
		existed, err := repo.Delete(context.Background(), "id-00")
		require.NoError(t, err)
		assert.True(t, existed)
	})

	t.Run("second delete of the same id succeeds", func(t *testing.T) {
		existed, err := repo.Delete(context.Background(), "id-00")
		require.NoError(t, err)
		assert.False(t, existed)
	})
}

func TestDeleteAll(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 5)

	require.NoError(t, repo.DeleteAll(context.Background()))
	records, total, err := repo.List(context.Background(), 1, 10, "created_at", "desc")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, records)

	// Clearing an already empty store also succeeds.
	assert.NoError(t, repo.DeleteAll(context.Background()))
}

func TestUniqueRequestID(t *testing.T) {
	repo := newTestRepo(t)
	seedRecords(t, repo, 1)

	err := repo.Create(context.Background(), &DetectionRecord{
		ID:        "other-id",
		RequestID: "req-00",
		Text:      "dup",
		RiskLevel: "low",
	})
	assert.Error(t, err, "request_id is unique per result")
}
