package services

import (
	"fmt"
	"log"

	"salon-wellness-backend/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	jobs int
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Add registers job under name. Job errors are logged and reported.
func (s *Scheduler) Add(name, spec string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Printf("Starting %s...", name)
		if err := job(); err != nil {
			utils.CaptureError(err, map[string]interface{}{"job": name})
			return
		}
		log.Printf("%s completed", name)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.jobs++
	return nil
}

func (s *Scheduler) Len() int {
	return s.jobs
}

func (s *Scheduler) Start() {
	if s.jobs == 0 {
		return
	}
	s.cron.Start()
	log.Printf("Scheduler started with %d jobs", s.jobs)
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
