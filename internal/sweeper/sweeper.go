package sweeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type GymLister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

type Notifier interface {
	SendExpiryNotice(ctx context.Context, email, name, membershipType string, endDate time.Time) error
}

type Result struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

type Option func(*Sweeper)

func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

// Sweeper marks lapsed Active memberships as Expired, once at start and then
// on a cron schedule.
type Sweeper struct {
	gyms     GymLister
	members  member.Repository
	notifier Notifier
	schedule string
	tracer   trace.Tracer
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func New(gyms GymLister, members member.Repository, notifier Notifier, schedule string, opts ...Option) *Sweeper {
	s := &Sweeper{
		gyms:     gyms,
		members:  members,
		notifier: notifier,
		schedule: schedule,
		tracer:   otel.Tracer("kaizen/sweeper"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs one sweep and schedules the rest. The scheduled sweeps use ctx
// until Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{})))
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule expiry sweep %q: %w", s.schedule, err)
	}

	s.Sweep(ctx)

	s.cron = c
	c.Start()
	logger.Info("expiry sweeper started", "schedule", s.schedule)
	return nil
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	logger.Info("expiry sweeper stopped")
}

// Sweep expires every lapsed Active member across all gyms. A failure on one
// gym or member is logged and counted, and the sweep moves on.
func (s *Sweeper) Sweep(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "sweeper.sweep")
	defer span.End()

	started := time.Now()
	now := s.now()
	var res Result

	gymIDs, err := s.gyms.ListIDs(ctx)
	if err != nil {
		logger.Error("expiry sweep: list gyms", "error", err)
		span.RecordError(err)
		res.Failed++
		metrics.RecordSweep(0, res.Failed, time.Since(started).Seconds())
		return res
	}

	for _, gymID := range gymIDs {
		s.sweepGym(ctx, gymID, now, &res)
	}

	span.SetAttributes(
		attribute.Int("sweep.scanned", res.Scanned),
		attribute.Int("sweep.expired", res.Expired),
		attribute.Int("sweep.failed", res.Failed),
	)
	metrics.RecordSweep(res.Expired, res.Failed, time.Since(started).Seconds())
	logger.Info("expiry sweep finished",
		"gyms", len(gymIDs),
		"scanned", res.Scanned,
		"expired", res.Expired,
		"failed", res.Failed,
	)
	return res
}

func (s *Sweeper) sweepGym(ctx context.Context, gymID int64, now time.Time, res *Result) {
	lapsed, err := s.members.ListLapsed(ctx, gymID, now)
	if err != nil {
		logger.Error("expiry sweep: list lapsed members", "gym_id", gymID, "error", err)
		res.Failed++
		return
	}
	res.Scanned += len(lapsed)

	for i := range lapsed {
		m := &lapsed[i]
		expired, err := s.members.MarkExpired(ctx, gymID, m.ID, now)
		if err != nil {
			logger.Error("expiry sweep: mark expired", "gym_id", gymID, "member_id", m.ID, "error", err)
			res.Failed++
			continue
		}
		if !expired {
			// renewed or already expired since the listing
			continue
		}
		res.Expired++
		s.notify(ctx, m)
	}
}

func (s *Sweeper) notify(ctx context.Context, m *member.Member) {
	if s.notifier == nil || m.Email == "" {
		return
	}
	if err := s.notifier.SendExpiryNotice(ctx, m.Email, m.Name, m.MembershipType, m.EndDate); err != nil {
		logger.Warn("failed to queue expiry notice", "member_id", m.ID, "error", err)
	}
}

// cronLogger routes cron's own messages to the service logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
