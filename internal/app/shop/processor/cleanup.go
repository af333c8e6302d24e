package processor

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"lavka/pkg/logger"
)

// CleanupRunner выполняет один проход фоновой очистки
type CleanupRunner interface {
	PurgeDeleted(ctx context.Context) error
}

// CronScheduler запускает фоновую очистку по расписанию
type CronScheduler struct {
	cron    *cron.Cron
	cleanup CleanupRunner
}

func NewCronScheduler(cleanup CleanupRunner) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:    c,
		cleanup: cleanup,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cleanup scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("cron job triggered: purging soft-deleted records")

		if err := s.cleanup.PurgeDeleted(ctx); err != nil {
			logger.Error().Err(err).Msg("cleanup job finished with errors")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("cleanup scheduler started")

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cleanup scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cleanup scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
