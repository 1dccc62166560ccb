package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kbukum/mp/logger"
)

// Entry is one periodic task.
type Entry struct {
	Name string `yaml:"name" mapstructure:"name"`
	Spec string `yaml:"schedule" mapstructure:"schedule"` // standard 5-field cron
	Task string `yaml:"task" mapstructure:"task"`
}

// DefaultSchedule runs the spider on the hour and result processing at
// half past.
func DefaultSchedule() []Entry {
	return []Entry{
		{Name: "run-sample-spider", Spec: "0 * * * *", Task: TaskStartSpider},
		{Name: "process-scraped-results", Spec: "30 * * * *", Task: TaskProcessResults},
	}
}

// Enqueuer is what the scheduler needs from a Client.
type Enqueuer interface {
	Delay(ctx context.Context, name string) (*AsyncResult, error)
}

// Scheduler enqueues tasks on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	client  Enqueuer
	entries []Entry
	ids     map[string]cron.EntryID
	log     *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler parses every entry in the configured timezone.
func NewScheduler(cfg BeatConfig, client Enqueuer) (*Scheduler, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("task: beat timezone: %w", err)
	}
	entries := cfg.Entries
	if len(entries) == 0 {
		entries = DefaultSchedule()
	}

	log := logger.WithComponent("task.beat")
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger{log: log}),
			cron.WithChain(cron.Recover(cronLogger{log: log})),
		),
		client:  client,
		entries: entries,
		ids:     make(map[string]cron.EntryID, len(entries)),
		log:     log,
	}

	for _, e := range entries {
		id, err := s.cron.AddFunc(e.Spec, s.fire(e))
		if err != nil {
			return nil, fmt.Errorf("task: schedule %s (%q): %w", e.Name, e.Spec, err)
		}
		s.ids[e.Name] = id
	}
	return s, nil
}

func (s *Scheduler) fire(e Entry) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := s.client.Delay(ctx, e.Task)
		if err != nil {
			s.log.WithError(err).Error("scheduled task not sent", logger.Fields("entry", e.Name, logger.FieldTask, e.Task))
			return
		}
		s.log.Info("scheduled task sent", logger.Fields("entry", e.Name, logger.FieldTask, e.Task, logger.FieldTaskID, res.ID))
	}
}

// Start begins firing entries.
func (s *Scheduler) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.cron.Start()
	s.running = true
	for _, e := range s.entries {
		s.log.Info("entry scheduled", logger.Fields("entry", e.Name, "schedule", e.Spec, "next", s.Next(e.Name)))
	}
	return nil
}

// Stop stops the scheduler and waits for firing entries until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns when the named entry fires next, or the zero time.
func (s *Scheduler) Next(name string) time.Time {
	id, ok := s.ids[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Entries returns the configured entries.
func (s *Scheduler) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, logger.Fields(keysAndValues...))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).Error("cron: "+msg, logger.Fields(keysAndValues...))
}
