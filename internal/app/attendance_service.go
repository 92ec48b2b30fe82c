// internal/app/attendance_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"
	idb "absentee_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// SessionAttendance is one scheduled session date and what was recorded for it.
type SessionAttendance struct {
	Date   calendar.Date
	Mark   attendance.Mark
	Record *attendance.Record // nil when nothing was recorded
}

// MonthlyLog is a student's attendance laid over their group's schedule for a month.
type MonthlyLog struct {
	Student    *student.Student
	Group      *group.Group // nil when the student has no group
	Year       int
	Month      time.Month
	Sessions   []SessionAttendance
	Attended   int
	Missed     int
	Unrecorded int
}

type AttendanceService struct {
	studentRepo    student.Repository
	groupRepo      group.Repository
	attendanceRepo attendance.Repository
	logger         *logrus.Entry
}

func NewAttendanceService(sr student.Repository, gr group.Repository, ar attendance.Repository, logger *logrus.Entry) *AttendanceService {
	return &AttendanceService{
		studentRepo:    sr,
		groupRepo:      gr,
		attendanceRepo: ar,
		logger:         logger.WithField("service", "attendance"),
	}
}

// FetchAttendance returns the student's records for the month keyed by calendar
// date. If the store holds more than one row for a date the later row wins.
func (s *AttendanceService) FetchAttendance(ctx context.Context, studentID string, year int, month time.Month) (map[calendar.Date]*attendance.Record, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.fetchMonth(ctx, studentID, year, month)
}

func (s *AttendanceService) fetchMonth(ctx context.Context, studentID string, year int, month time.Month) (map[calendar.Date]*attendance.Record, error) {
	first := calendar.Date{Year: year, Month: month, Day: 1}
	last := first.LastOfMonth()

	records, err := s.attendanceRepo.ListByStudentBetween(ctx, studentID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for student %s: %w", studentID, err)
	}

	byDate := make(map[calendar.Date]*attendance.Record, len(records))
	for _, rec := range records {
		if _, dup := byDate[rec.Date]; dup {
			s.logger.WithFields(logrus.Fields{
				"student_id": studentID,
				"date":       rec.Date.String(),
			}).Warn("Multiple attendance records for one date, keeping the latest")
		}
		byDate[rec.Date] = rec
	}
	return byDate, nil
}

// MonthlyLog joins the group's scheduled session dates with the student's
// records. A student without a group is treated as meeting every day.
func (s *AttendanceService) MonthlyLog(ctx context.Context, studentID string, year int, month time.Month) (*MonthlyLog, error) {
	st, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	log := &MonthlyLog{Student: st, Year: year, Month: month}
	days := group.ScheduleDays{}
	if st.GroupID.Valid {
		g, err := s.groupRepo.GetByID(ctx, st.GroupID.String)
		switch {
		case err == nil:
			log.Group = g
			days = g.ScheduleDays
		case errors.Is(err, idb.ErrGroupNotFound):
			s.logger.WithField("student_id", studentID).Warn("Student references a missing group, using every day of the month")
		default:
			return nil, fmt.Errorf("failed to load group for student %s: %w", studentID, err)
		}
	}

	byDate, err := s.fetchMonth(ctx, studentID, year, month)
	if err != nil {
		return nil, err
	}

	for _, date := range group.ResolveSessionDates(days, year, month) {
		session := SessionAttendance{Date: date, Mark: attendance.MarkUnrecorded}
		if rec, ok := byDate[date]; ok {
			session.Record = rec
			if rec.Status.Attended() {
				session.Mark = attendance.MarkPresent
			} else {
				session.Mark = attendance.MarkAbsent
			}
		}
		switch session.Mark {
		case attendance.MarkPresent:
			log.Attended++
		case attendance.MarkAbsent:
			log.Missed++
		default:
			log.Unrecorded++
		}
		log.Sessions = append(log.Sessions, session)
	}
	return log, nil
}
