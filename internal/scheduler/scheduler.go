// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is a named maintenance task with a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Run      func()
}

// Scheduler fires registered jobs on their cron schedules.
type Scheduler struct {
	jobs   []Job
	cron   *cron.Cron
	logger *slog.Logger
}

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New creates a Scheduler for the given jobs.
func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		cron:   cron.New(cron.WithParser(cronParser)),
		logger: logger,
	}
}

// Start registers every job with a valid schedule and starts the cron
// ticker. Jobs with invalid schedules are logged and skipped.
func (s *Scheduler) Start() error {
	for _, job := range s.jobs {
		if job.Schedule == "" {
			continue
		}

		name := job.Name
		run := job.Run

		_, err := s.cron.AddFunc(job.Schedule, func() {
			s.logger.Info("cron firing job", "name", name)
			run()
		})
		if err != nil {
			s.logger.Error("invalid cron schedule", "name", job.Name, "schedule", job.Schedule, "error", err)
			continue
		}
		s.logger.Info("scheduled job", "name", job.Name, "schedule", job.Schedule)
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
