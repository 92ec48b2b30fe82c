package app

import (
	"context"
	"fmt"

	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"

	"github.com/sirupsen/logrus"
)

// AbsenteeReport partitions a group's roster for one date.
type AbsenteeReport struct {
	Group   *group.Group
	Date    calendar.Date
	Total   int
	Present []*student.Student
	Absent  []*student.Student
	// Marks keeps the tri-state per student ID, so callers can tell a
	// confirmed absence from a student nobody marked.
	Marks map[string]attendance.Mark
}

type AbsenteeService struct {
	groupRepo      group.Repository
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
	logger         *logrus.Entry
}

func NewAbsenteeService(gr group.Repository, sr student.Repository, ar attendance.Repository, logger *logrus.Entry) *AbsenteeService {
	return &AbsenteeService{
		groupRepo:      gr,
		studentRepo:    sr,
		attendanceRepo: ar,
		logger:         logger.WithField("service", "absentee"),
	}
}

// ComputeAbsentees splits the active roster of the group into present and absent
// for date. A student with no record for the date counts as absent. The date
// is taken as given, whether or not the group meets on it.
func (s *AbsenteeService) ComputeAbsentees(ctx context.Context, groupID string, date calendar.Date) (*AbsenteeReport, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.studentRepo.ListActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for group %s: %w", groupID, err)
	}

	roster := make([]*student.Student, 0, len(candidates))
	ids := make([]string, 0, len(candidates))
	for _, st := range candidates {
		if !st.IsActive || !st.GroupID.Valid || st.GroupID.String != groupID {
			continue
		}
		roster = append(roster, st)
		ids = append(ids, st.ID)
	}

	report := &AbsenteeReport{
		Group:   g,
		Date:    date,
		Total:   len(roster),
		Present: []*student.Student{},
		Absent:  []*student.Student{},
		Marks:   make(map[string]attendance.Mark, len(roster)),
	}
	if len(roster) == 0 {
		return report, nil
	}

	records, err := s.attendanceRepo.ListByStudentsOnDate(ctx, ids, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for group %s on %s: %w", groupID, date, err)
	}
	statusByStudent := make(map[string]attendance.Status, len(records))
	for _, rec := range records {
		statusByStudent[rec.StudentID] = rec.Status
	}

	for _, st := range roster {
		status, recorded := statusByStudent[st.ID]
		switch {
		case !recorded:
			report.Marks[st.ID] = attendance.MarkUnrecorded
			report.Absent = append(report.Absent, st)
		case status.Attended():
			report.Marks[st.ID] = attendance.MarkPresent
			report.Present = append(report.Present, st)
		default:
			report.Marks[st.ID] = attendance.MarkAbsent
			report.Absent = append(report.Absent, st)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"group_id": groupID,
		"date":     date.String(),
		"total":    report.Total,
		"present":  len(report.Present),
		"absent":   len(report.Absent),
	}).Debug("Absentees computed")
	return report, nil
}
