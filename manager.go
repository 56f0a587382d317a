package xtid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// defaultRefreshInterval is how long extracted key material is trusted
// before the homepage is re-fetched.
const defaultRefreshInterval = 30 * time.Minute

// Manager caches a Client and rebuilds it when its key material goes stale.
// Thread-safe. Falls back to the stale client when a refresh fails, since an
// old key that still verifies beats no key at all.
type Manager struct {
	mu          sync.RWMutex
	client      *Client
	lastRefresh time.Time

	refreshInterval time.Duration
	fetcher         Fetcher
	opts            []Option
}

// NewManager creates a manager around the given transport. A nil fetcher
// uses the bundled stealth transport, constructed lazily on first refresh.
func NewManager(fetcher Fetcher, opts ...Option) *Manager {
	return &Manager{
		refreshInterval: defaultRefreshInterval,
		fetcher:         fetcher,
		opts:            opts,
	}
}

// Refresh fetches fresh documents and swaps in a new Client.
func (m *Manager) Refresh(ctx context.Context) error {
	client, err := Fetch(ctx, m.fetcher, m.opts...)
	if err != nil {
		return fmt.Errorf("refresh key material: %w", err)
	}

	m.mu.Lock()
	m.client = client
	m.lastRefresh = time.Now()
	m.mu.Unlock()

	prefix := client.animationKey
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	slog.Info("xtid: key material refreshed", slog.String("anim_key", prefix+"..."))
	return nil
}

// GenerateTransactionID returns a transaction ID for the given method and
// path, refreshing the key material first if it is missing or stale.
func (m *Manager) GenerateTransactionID(ctx context.Context, method, path string) (string, error) {
	m.mu.RLock()
	needRefresh := m.client == nil || time.Since(m.lastRefresh) > m.refreshInterval
	m.mu.RUnlock()

	if needRefresh {
		if err := m.Refresh(ctx); err != nil {
			m.mu.RLock()
			hasStale := m.client != nil
			m.mu.RUnlock()
			if !hasStale {
				return "", err
			}
			slog.Warn("xtid: refresh failed, using stale key material", slog.Any("error", err))
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client.GenerateTransactionID(method, path)
}
