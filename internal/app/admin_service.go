package app

import (
	"context"
	"fmt"
	"time"

	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"

	"github.com/google/uuid"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
var ErrInvalidID = fmt.Errorf("identifier is not a valid UUID")

// GroupSessions is a group's scheduled session dates for a month.
type GroupSessions struct {
	Group *group.Group
	Dates []calendar.Date
}

// AdminService is the staff-facing entry point: it checks who is asking and
// validates identifiers before delegating to the domain services.
type AdminService struct {
	groupRepo       group.Repository
	attendance      *AttendanceService
	notifications   NotificationService
	adminTelegramID int64
}

func NewAdminService(gr group.Repository, as *AttendanceService, ns NotificationService, adminID int64) *AdminService {
	return &AdminService{
		groupRepo:       gr,
		attendance:      as,
		notifications:   ns,
		adminTelegramID: adminID,
	}
}

func (s *AdminService) authorize(performingAdminID int64) error {
	if performingAdminID != s.adminTelegramID {
		return ErrAdminNotAuthorized
	}
	return nil
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.String(), nil
}

func (s *AdminService) ListGroups(ctx context.Context, performingAdminID int64) ([]*group.Group, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GroupSessions resolves the session dates of a group for the given month.
func (s *AdminService) GroupSessions(ctx context.Context, performingAdminID int64, groupID string, year int, month time.Month) (*GroupSessions, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	id, err := parseID(groupID)
	if err != nil {
		return nil, err
	}
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GroupSessions{Group: g, Dates: group.ResolveSessionDates(g.ScheduleDays, year, month)}, nil
}

func (s *AdminService) StudentMonthlyLog(ctx context.Context, performingAdminID int64, studentID string, year int, month time.Month) (*MonthlyLog, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	id, err := parseID(studentID)
	if err != nil {
		return nil, err
	}
	return s.attendance.MonthlyLog(ctx, id, year, month)
}

// NotifyAbsentees is the admin-triggered "notify absentees" action.
func (s *AdminService) NotifyAbsentees(ctx context.Context, performingAdminID int64, groupID string, date calendar.Date) (*NotifyResult, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	id, err := parseID(groupID)
	if err != nil {
		return nil, err
	}
	return s.notifications.NotifyAbsentees(ctx, id, date)
}
