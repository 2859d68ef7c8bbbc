package scheduler

import (
	"sync"

	"locust/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring bot maintenance on cron schedules. Modules
// contribute funcs through RegisterNewMinuteFunc and
// RegisterNewHourFunc before Start is called.
type Scheduler struct {
	config *config.Config
	cron   *cron.Cron

	mu          sync.Mutex
	minuteFuncs []func() error
	hourFuncs   []func() error
	started     bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		config: cfg,
		cron:   cron.New(),
	}
}

// RegisterNewMinuteFunc adds a func to run every minute
func (s *Scheduler) RegisterNewMinuteFunc(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minuteFuncs = append(s.minuteFuncs, fn)
}

// RegisterNewHourFunc adds a func to run every hour
func (s *Scheduler) RegisterNewHourFunc(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hourFuncs = append(s.hourFuncs, fn)
}

// RegisterFunc runs a named func on an arbitrary cron schedule.
func (s *Scheduler) RegisterFunc(spec, name string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled task %q failed: %v", name, err)
		}
	})
	return err
}

// Start begins running registered funcs on their schedules. It is a
// no-op if the scheduler is already running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if _, err := s.cron.AddFunc("@every 1m", func() { s.runAll("minute", s.snapshot(&s.minuteFuncs)) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 1h", func() { s.runAll("hour", s.snapshot(&s.hourFuncs)) }); err != nil {
		return err
	}

	s.cron.Start()
	s.started = true
	s.config.Logger.Info("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
	s.config.Logger.Info("Scheduler stopped")
}

func (s *Scheduler) snapshot(funcs *[]func() error) []func() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func() error, len(*funcs))
	copy(out, *funcs)
	return out
}

func (s *Scheduler) runAll(kind string, funcs []func() error) {
	for _, fn := range funcs {
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled %s task failed: %v", kind, err)
		}
	}
}
