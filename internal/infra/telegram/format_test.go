package telegram

import (
	"fmt"
	"testing"
	"time"

	"absentee_notification_bot/internal/app"
	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"
	idb "absentee_notification_bot/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateArg(t *testing.T) {
	d, err := parseDateArg([]string{"g1", "2025-03-04"}, 1, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.March, 4), d)

	d, err = parseDateArg([]string{"g1"}, 1, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, calendar.Today(time.UTC), d)

	_, err = parseDateArg([]string{"g1", "04/03/2025"}, 1, time.UTC)
	assert.Error(t, err)
}

func TestParseMonthArg(t *testing.T) {
	year, month, err := parseMonthArg([]string{"s1", "2024-02"}, 1, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	_, _, err = parseMonthArg([]string{"s1", "2024-13"}, 1, time.UTC)
	assert.Error(t, err)
}

func TestDescribeSchedule(t *testing.T) {
	assert.Equal(t, "كل يوم", describeSchedule(nil))
	assert.Equal(t, "الأحد، الأربعاء", describeSchedule(group.ScheduleDays{"sun", "Wed"}))
	assert.Equal(t, "الأحد، funday", describeSchedule(group.ScheduleDays{"sun", "funday"}))
}

func TestRenderSessions(t *testing.T) {
	gs := &app.GroupSessions{
		Group: &group.Group{Name: "G1", ScheduleDays: group.ScheduleDays{"tue"}},
		Dates: []calendar.Date{calendar.NewDate(2025, time.March, 4), calendar.NewDate(2025, time.March, 11)},
	}
	out := renderSessions(gs, 2025, time.March)
	assert.Contains(t, out, "2025-03-04 الثلاثاء")
	assert.Contains(t, out, "2025-03-11 الثلاثاء")
	assert.Contains(t, out, "الإجمالي: 2 حصة")

	gs.Dates = nil
	assert.Contains(t, renderSessions(gs, 2025, time.March), "لا توجد حصص")
}

func TestRenderMonthlyLog(t *testing.T) {
	log := &app.MonthlyLog{
		Student: &student.Student{Name: "Ali"},
		Year:    2025,
		Month:   time.April,
		Sessions: []app.SessionAttendance{
			{Date: calendar.NewDate(2025, time.April, 1), Mark: attendance.MarkPresent, Record: &attendance.Record{Status: attendance.StatusLate}},
			{Date: calendar.NewDate(2025, time.April, 8), Mark: attendance.MarkAbsent, Record: &attendance.Record{Status: attendance.StatusAbsent}},
			{Date: calendar.NewDate(2025, time.April, 15), Mark: attendance.MarkUnrecorded},
		},
		Attended:   1,
		Missed:     1,
		Unrecorded: 1,
	}
	out := renderMonthlyLog(log)
	assert.Contains(t, out, "بدون مجموعة")
	assert.Contains(t, out, "✅ 2025-04-01 (late)")
	assert.Contains(t, out, "❌ 2025-04-08\n")
	assert.Contains(t, out, "➖ 2025-04-15")
	assert.Contains(t, out, "حضور: 1 | غياب: 1 | غير مسجل: 1")
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{app.ErrAdminNotAuthorized, "خطأ: ليس لديك صلاحية لتنفيذ هذا الأمر."},
		{fmt.Errorf("%w: %q", app.ErrInvalidID, "x"), "خطأ: المعرّف غير صالح."},
		{fmt.Errorf("lookup: %w", idb.ErrGroupNotFound), "المجموعة غير موجودة."},
		{fmt.Errorf("lookup: %w", idb.ErrStudentNotFound), "الطالب غير موجود."},
		{fmt.Errorf("connection reset"), "حدث خطأ غير متوقع. حاول مرة أخرى لاحقاً."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, userMessage(tc.err))
	}
}

func TestRefreshMarkupCarriesGroupAndDate(t *testing.T) {
	markup := refreshMarkup("g-1", "2025-03-04")
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, "absent_refresh", btn.Unique)
	assert.Equal(t, "g-1|2025-03-04", btn.Data)
}
