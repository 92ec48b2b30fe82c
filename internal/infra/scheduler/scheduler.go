package scheduler

import (
	"context"
	"fmt"
	"time"

	"absentee_notification_bot/internal/app" // For NotificationService interface
	"absentee_notification_bot/internal/domain/calendar"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reportTimeout = 5 * time.Minute

type AbsenteeScheduler struct {
	cronEngine   *cron.Cron
	notifService app.NotificationService
	logger       *logrus.Entry
	location     *time.Location
	cronSpec     string
	now          func() time.Time
}

// NewAbsenteeScheduler runs the daily absentee report on cronSpec, evaluated
// in the center's time zone so "today" matches the attendance calendar.
func NewAbsenteeScheduler(
	notifService app.NotificationService,
	logger *logrus.Entry,
	location *time.Location,
	cronSpec string, // e.g., "0 21 * * *" (9 PM daily)
) *AbsenteeScheduler {
	if location == nil {
		location = time.Local
	}
	return &AbsenteeScheduler{
		cronEngine:   cron.New(cron.WithLocation(location)),
		notifService: notifService,
		logger:       logger.WithField("component", "scheduler"),
		location:     location,
		cronSpec:     cronSpec,
		now:          time.Now,
	}
}

func (s *AbsenteeScheduler) Start() error {
	s.logger.Info("Starting absentee scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily absentee report.")
		s.runDailyReport()
	})
	if err != nil {
		return fmt.Errorf("could not add daily absentee report job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Absentee scheduler started.")
	return nil
}

func (s *AbsenteeScheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	today := calendar.DateIn(s.now(), s.location)
	logCtx := s.logger.WithField("date", today.String())
	if err := s.notifService.SendDailyReport(ctx, today); err != nil {
		logCtx.WithError(err).Error("Daily absentee report finished with errors")
		return
	}
	logCtx.Info("Daily absentee report sent.")
}

func (s *AbsenteeScheduler) Stop() {
	s.logger.Info("Stopping absentee scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Absentee scheduler gracefully stopped.")
}
