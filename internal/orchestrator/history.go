package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/client"
	"github.com/imleoo/aigc-check/internal/models"
)

// ListState is the history lister's position in its load cycle.
type ListState string

const (
	ListStateIdle    ListState = "idle"
	ListStateLoading ListState = "loading"
	ListStateListed  ListState = "listed"
	ListStateFailed  ListState = "failed"
)

// Lister is the paging capability the history lister needs from the client.
type Lister interface {
	ListHistory(ctx context.Context, params client.ListParams) (*models.HistoryListResult, error)
}

// ListSnapshot is a point-in-time view of the lister's published state.
type ListSnapshot struct {
	State ListState
	Page  *models.HistoryListResult
	Err   error
}

// HistoryLister loads history pages with the same two-outcome shape as the
// submission orchestrator but no validation phase: paging parameters are
// passed through as supplied. Overlapping loads resolve last-call-wins.
type HistoryLister struct {
	lister  Lister
	logger  *zap.Logger
	timeout time.Duration

	mu    sync.Mutex
	seq   uint64
	state ListState
	page  *models.HistoryListResult
	err   error
}

// NewHistoryLister creates a lister over the given paging client.
func NewHistoryLister(lister Lister, logger *zap.Logger) *HistoryLister {
	return &HistoryLister{
		lister:  lister,
		logger:  logger.Named("history_lister"),
		timeout: client.DefaultTimeout,
		state:   ListStateIdle,
	}
}

// Load fetches one history page and publishes it.
func (l *HistoryLister) Load(ctx context.Context, params client.ListParams) (*models.HistoryListResult, error) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state = ListStateLoading
	l.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	page, err := l.lister.ListHistory(callCtx, params)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return page, err
	}
	if err != nil {
		l.state = ListStateFailed
		l.err = err
		l.logger.Warn("history load failed", zap.Error(err))
		return nil, err
	}
	l.state = ListStateListed
	l.page = page
	l.err = nil
	l.logger.Debug("history page loaded",
		zap.Int("page", page.Page),
		zap.Int64("total", page.Total),
		zap.Int("items", len(page.Items)))
	return page, nil
}

// Snapshot returns the currently published list state.
func (l *HistoryLister) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ListSnapshot{State: l.state, Page: l.page, Err: l.err}
}
