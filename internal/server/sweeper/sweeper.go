package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/board-admin/internal/server/storage"
)

// Sweeper периодически удаляет истекшие refresh tokens из БД.
// Запускается раз в сутки в настроенное время (по умолчанию 02:00).
// Ошибка одного запуска логируется и не мешает следующим запускам
type Sweeper struct {
	logger       *slog.Logger
	tokenStorage storage.TokenStorage
	hour         int
	minute       int
}

// New создает новый sweeper с временем запуска hour:minute
func New(logger *slog.Logger, tokenStorage storage.TokenStorage, hour, minute int) *Sweeper {
	return &Sweeper{
		logger:       logger,
		tokenStorage: tokenStorage,
		hour:         hour,
		minute:       minute,
	}
}

// Run запускает цикл очистки до отмены контекста.
// Блокирует вызывающую goroutine
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("token sweeper started",
		slog.Int("hour", s.hour), slog.Int("minute", s.minute))

	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("token sweeper stopped")
			return
		case <-timer.C:
			if err := s.RunOnce(ctx); err != nil {
				// Неудачный запуск фатален только для самого запуска
				s.logger.Error("token sweep failed", slog.Any("error", err))
			}
		}
	}
}

// RunOnce выполняет один проход очистки: считает истекшие токены,
// удаляет их и сверяет оба количества
func (s *Sweeper) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during token sweep: %v", r)
		}
	}()

	now := time.Now()

	expiredCount, err := s.tokenStorage.CountExpiredTokens(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to count expired tokens: %w", err)
	}

	s.logger.Info("expired tokens found", slog.Int("count", expiredCount))

	if expiredCount == 0 {
		return nil
	}

	deletedCount, err := s.tokenStorage.DeleteExpiredTokens(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	s.logger.Info("expired tokens deleted", slog.Int("count", deletedCount))

	// Расхождение сигналит о гонке со встречными login/logout,
	// это не ошибка очистки
	if deletedCount != expiredCount {
		s.logger.Warn("expired token count mismatch",
			slog.Int("expected", expiredCount),
			slog.Int("deleted", deletedCount))
	}

	return nil
}

// nextRun возвращает ближайший момент запуска после now
func (s *Sweeper) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
