package app

import (
	"context"
	"testing"
	"time"

	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"
	idb "absentee_notification_bot/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID     int64 = 1001
	groupUUID         = "6f1c2a0e-5b7d-4c1e-9a7b-0d2f3e4a5b6c"
	studentUUID       = "0b9e8d7c-6a5f-4e3d-8c2b-1a0f9e8d7c6b"
)

func newAdminFixture() *AdminService {
	g := &group.Group{ID: groupUUID, Name: "Morning", ScheduleDays: group.ScheduleDays{"sat"}, IsActive: true}
	groups := newFakeGroupRepo(g)
	students := &fakeStudentRepo{students: []*student.Student{
		{ID: studentUUID, Name: "Alice", GroupID: nullString(groupUUID), Phone: nullString("01011111111"), IsActive: true},
	}}
	records := &fakeAttendanceRepo{}
	logger := testLogger()

	attendanceSvc := NewAttendanceService(students, groups, records, logger)
	absentees := NewAbsenteeService(groups, students, records, logger)
	notifications := NewNotificationServiceImpl(absentees, groups, NewNotificationFormatter("", ""), &fakeTelegramClient{}, adminID, "", logger)
	return NewAdminService(groups, attendanceSvc, notifications, adminID)
}

func TestAdminService_RejectsNonAdmin(t *testing.T) {
	svc := newAdminFixture()
	ctx := context.Background()

	_, err := svc.ListGroups(ctx, 7)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
	_, err = svc.GroupSessions(ctx, 7, groupUUID, 2025, time.April)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
	_, err = svc.StudentMonthlyLog(ctx, 7, studentUUID, 2025, time.April)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
	_, err = svc.NotifyAbsentees(ctx, 7, groupUUID, tuesday)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
}

func TestAdminService_RejectsMalformedIDs(t *testing.T) {
	svc := newAdminFixture()

	_, err := svc.NotifyAbsentees(context.Background(), adminID, "g1", tuesday)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = svc.StudentMonthlyLog(context.Background(), adminID, "alice", 2025, time.April)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestAdminService_GroupSessions(t *testing.T) {
	svc := newAdminFixture()

	sessions, err := svc.GroupSessions(context.Background(), adminID, groupUUID, 2025, time.April)
	require.NoError(t, err)
	assert.Equal(t, "Morning", sessions.Group.Name)
	assert.Len(t, sessions.Dates, 4) // Saturdays: 5 12 19 26

	_, err = svc.GroupSessions(context.Background(), adminID, "11111111-2222-4333-8444-555555555555", 2025, time.April)
	assert.ErrorIs(t, err, idb.ErrGroupNotFound)
}

func TestAdminService_NotifyAbsentees(t *testing.T) {
	svc := newAdminFixture()

	// Upper-case input is accepted and canonicalized.
	result, err := svc.NotifyAbsentees(context.Background(), adminID, "6F1C2A0E-5B7D-4C1E-9A7B-0D2F3E4A5B6C", tuesday)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Report.Total)
	assert.Equal(t, 1, result.NotificationsSent())
}

func TestAdminService_StudentMonthlyLog(t *testing.T) {
	svc := newAdminFixture()

	log, err := svc.StudentMonthlyLog(context.Background(), adminID, studentUUID, 2025, time.April)
	require.NoError(t, err)
	assert.Len(t, log.Sessions, 4)
	assert.Equal(t, 4, log.Unrecorded)
}
