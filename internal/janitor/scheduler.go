package janitor

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is a periodic cleanup job. Run returns the number of items removed.
type Task struct {
	Name string
	Run  func() int
}

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Add schedules task with a cron spec such as "@every 1m".
func (s *Scheduler) Add(spec string, task Task) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.runTask(task)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", task.Name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("janitor started", zap.Int("tasks", len(s.cron.Entries())))
}

// Stop halts scheduling and returns a context that is done once running
// tasks have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("janitor task panicked", zap.String("task", task.Name), zap.Any("panic", r))
		}
	}()

	removed := task.Run()
	if removed > 0 {
		s.logger.Debug("janitor task", zap.String("task", task.Name), zap.Int("removed", removed))
	}
}
