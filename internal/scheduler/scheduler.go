package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Rotator advances the daily word for every user.
type Rotator interface {
	RotateAll()
}

// Reminder delivers due reminders for a local hour.
type Reminder interface {
	SendReminders(hour int)
}

// Scheduler fires the daily rotation shortly after midnight and a reminder
// sweep every hour. The few minutes past midnight keep the rotation clear of
// timezone and DST edges.
type Scheduler struct {
	scheduler *gocron.Scheduler
	rotator   Rotator
	reminder  Reminder
}

func New(rotator Rotator, reminder Reminder) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		rotator:   rotator,
		reminder:  reminder,
	}
}

// Start runs the jobs in the background. The rotation also runs once
// immediately, the startup analog of the day-boundary event.
func (s *Scheduler) Start() {
	s.rotator.RotateAll()

	if _, err := s.scheduler.Every(1).Day().At("00:05").Do(func() {
		log.Println("[scheduler] daily rotation")
		s.rotator.RotateAll()
	}); err != nil {
		log.Printf("[scheduler] failed to schedule rotation: %v", err)
	}

	if _, err := s.scheduler.Every(1).Hour().Do(func() {
		s.reminder.SendReminders(time.Now().Hour())
	}); err != nil {
		log.Printf("[scheduler] failed to schedule reminders: %v", err)
	}

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
