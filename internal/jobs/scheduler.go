package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"couponmart/internal/config"
	"couponmart/internal/repository"
	"couponmart/internal/session"
)

// Scheduler runs the two housekeeping jobs: the daily purge of coupons whose
// end date passed, and periodic eviction of idle sessions.
type Scheduler struct {
	cron     *cron.Cron
	coupons  repository.CouponRepository
	registry *session.Registry
	security config.SecurityConfig
	log      zerolog.Logger
}

func NewScheduler(coupons repository.CouponRepository, registry *session.Registry, security config.SecurityConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		coupons:  coupons,
		registry: registry,
		security: security,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	// Midnight, daily.
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.purgeExpiredCoupons); err != nil {
		return err
	}
	// Every five minutes.
	if _, err := s.cron.AddFunc("0 */5 * * * *", s.evictIdleSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) purgeExpiredCoupons() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.coupons.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("expired coupon purge failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired coupons purged")
	}
}

func (s *Scheduler) evictIdleSessions() {
	if evicted := s.registry.EvictIdle(s.security.SessionIdleTTL); evicted > 0 {
		s.log.Info().Int("evicted", evicted).Msg("idle sessions evicted")
	}
}
