package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/board-admin/internal/models"
)

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	countError   error
	deleteError  error
	expiredCount int
	deletedCount int
	countCalls   int
	deleteCalls  int
	panicOnCount bool
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) (int64, error) {
	return 1, nil
}

func (m *mockTokenStorage) MatchRefreshToken(ctx context.Context, token string, now time.Time) (string, error) {
	return "", nil
}

func (m *mockTokenStorage) DeleteMemberToken(ctx context.Context, memberEmail string) error {
	return nil
}

func (m *mockTokenStorage) CountExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	m.countCalls++
	if m.panicOnCount {
		panic("storage exploded")
	}
	if m.countError != nil {
		return 0, m.countError
	}
	return m.expiredCount, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	m.deleteCalls++
	if m.deleteError != nil {
		return 0, m.deleteError
	}
	return m.deletedCount, nil
}

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func TestSweeper_RunOnce_DeletesExpired(t *testing.T) {
	ts := &mockTokenStorage{expiredCount: 3, deletedCount: 3}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ts.countCalls)
	assert.Equal(t, 1, ts.deleteCalls)
}

func TestSweeper_RunOnce_NothingExpired(t *testing.T) {
	ts := &mockTokenStorage{expiredCount: 0}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ts.countCalls)
	assert.Zero(t, ts.deleteCalls, "delete is skipped when nothing expired")
}

func TestSweeper_RunOnce_CountMismatch(t *testing.T) {
	// Расхождение count/deleted логируется, но не является ошибкой
	ts := &mockTokenStorage{expiredCount: 5, deletedCount: 3}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	assert.NoError(t, err)
}

func TestSweeper_RunOnce_CountError(t *testing.T) {
	ts := &mockTokenStorage{countError: errors.New("db is down")}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, ts.deleteCalls)
}

func TestSweeper_RunOnce_DeleteError(t *testing.T) {
	ts := &mockTokenStorage{expiredCount: 2, deleteError: errors.New("db is down")}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestSweeper_RunOnce_RecoversPanic(t *testing.T) {
	ts := &mockTokenStorage{panicOnCount: true}
	s := New(setupTestLogger(), ts, 2, 0)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic during token sweep")
}

func TestSweeper_NextRun(t *testing.T) {
	s := New(setupTestLogger(), &mockTokenStorage{}, 2, 0)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before fire time: same day",
			now:  time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "after fire time: next day",
			now:  time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at fire time: next day",
			now:  time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.nextRun(tt.now))
		})
	}
}

func TestSweeper_Run_StopsOnContextCancel(t *testing.T) {
	ts := &mockTokenStorage{}
	s := New(setupTestLogger(), ts, 2, 0)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}
