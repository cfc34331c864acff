package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubsync/orghub/internal/config"
	"github.com/clubsync/orghub/internal/pkg/calendar"
	"github.com/clubsync/orghub/internal/repository"
	"github.com/clubsync/orghub/internal/repository/dao"
	"github.com/clubsync/orghub/internal/service"
)

// Job is a periodic task. Consecutive runs never overlap: a tick that
// arrives while the previous run is still active is skipped.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	running atomic.Bool
}

type Scheduler struct {
	jobs   []*Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(conf *config.JobsConfig, db *gorm.DB) (*Scheduler, error) {
	cleanupInterval, err := time.ParseDuration(conf.TokenCleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid token_cleanup_interval -> %w", err)
	}

	tokenRepo := repository.NewTokenRepository(dao.NewTokenDAO(db))

	s := &Scheduler{}
	s.jobs = append(s.jobs, &Job{
		Name:     "token-cleanup",
		Interval: cleanupInterval,
		Run: func(ctx context.Context) error {
			deleted, err := tokenRepo.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			if deleted > 0 {
				zap.L().Info("purged refresh tokens", zap.Int64("count", deleted))
			}
			return nil
		},
	})

	// Calendar sync only runs when a source API is configured.
	if conf.CalendarAPIBaseURL != "" {
		syncInterval, err := time.ParseDuration(conf.CalendarSyncInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid calendar_sync_interval -> %w", err)
		}

		orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
		contributionRepo := repository.NewContributionRepository(dao.NewContributionDAO(db))
		client := calendar.NewHTTPClient(conf.CalendarAPIBaseURL, conf.CalendarAPIToken)
		syncSvc := service.NewSyncService(orgRepo, contributionRepo, client)

		s.jobs = append(s.jobs, &Job{
			Name:     "calendar-sync",
			Interval: syncInterval,
			Run: func(ctx context.Context) error {
				imported, err := syncSvc.SyncAll(ctx)
				if err != nil {
					return err
				}
				if imported > 0 {
					zap.L().Info("imported contributions", zap.Int("count", imported))
				}
				return nil
			},
		})
	}

	return s, nil
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
}

// Stop cancels every loop and waits for in-flight runs to drain.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, job)
		}
	}
}

// fire starts one run unless the previous run is still active.
func (s *Scheduler) fire(ctx context.Context, job *Job) {
	if !job.running.CompareAndSwap(false, true) {
		zap.L().Warn("job still running, skipping tick", zap.String("job", job.Name))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer job.running.Store(false)

		if err := job.Run(ctx); err != nil {
			zap.L().Error("job failed", zap.String("job", job.Name), zap.Error(err))
		}
	}()
}
