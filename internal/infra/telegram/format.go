package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"absentee_notification_bot/internal/app"
	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	idb "absentee_notification_bot/internal/infra/database"
)

var weekdayNames = map[string]string{
	"sun": "الأحد",
	"mon": "الإثنين",
	"tue": "الثلاثاء",
	"wed": "الأربعاء",
	"thu": "الخميس",
	"fri": "الجمعة",
	"sat": "السبت",
}

// parseDateArg reads an optional YYYY-MM-DD argument, defaulting to today.
func parseDateArg(args []string, idx int, loc *time.Location) (calendar.Date, error) {
	if len(args) <= idx {
		return calendar.Today(loc), nil
	}
	return calendar.Parse(args[idx])
}

// parseMonthArg reads an optional YYYY-MM argument, defaulting to the current month.
func parseMonthArg(args []string, idx int, loc *time.Location) (int, time.Month, error) {
	if len(args) <= idx {
		today := calendar.Today(loc)
		return today.Year, today.Month, nil
	}
	t, err := time.Parse("2006-01", args[idx])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", args[idx], err)
	}
	return t.Year(), t.Month(), nil
}

func describeSchedule(days group.ScheduleDays) string {
	if len(days) == 0 {
		return "كل يوم"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if name, ok := weekdayNames[strings.ToLower(strings.TrimSpace(d))]; ok {
			names = append(names, name)
		} else {
			names = append(names, d)
		}
	}
	return strings.Join(names, "، ")
}

func renderGroups(groups []*group.Group) string {
	if len(groups) == 0 {
		return "لا توجد مجموعات نشطة."
	}
	var b strings.Builder
	b.WriteString("--- المجموعات النشطة ---\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("• %s\n  ID: %s\n  المواعيد: %s\n", g.Name, g.ID, describeSchedule(g.ScheduleDays)))
		if g.Grade.Valid && g.Grade.String != "" {
			b.WriteString(fmt.Sprintf("  الصف: %s\n", g.Grade.String))
		}
	}
	return b.String()
}

func renderSessions(gs *app.GroupSessions, year int, month time.Month) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 مواعيد %s لشهر %04d-%02d (%s)\n", gs.Group.Name, year, int(month), describeSchedule(gs.Group.ScheduleDays)))
	if len(gs.Dates) == 0 {
		b.WriteString("لا توجد حصص في هذا الشهر.")
		return b.String()
	}
	for _, d := range gs.Dates {
		b.WriteString(fmt.Sprintf("• %s %s\n", d.String(), weekdayNames[strings.ToLower(d.Weekday().String()[:3])]))
	}
	b.WriteString(fmt.Sprintf("\nالإجمالي: %d حصة", len(gs.Dates)))
	return b.String()
}

func renderMonthlyLog(log *app.MonthlyLog) string {
	var b strings.Builder
	groupName := "بدون مجموعة"
	if log.Group != nil {
		groupName = log.Group.Name
	}
	b.WriteString(fmt.Sprintf("👤 %s | %s | %04d-%02d\n\n", log.Student.Name, groupName, log.Year, int(log.Month)))
	for _, s := range log.Sessions {
		var mark string
		switch s.Mark {
		case attendance.MarkPresent:
			mark = "✅"
		case attendance.MarkAbsent:
			mark = "❌"
		default:
			mark = "➖"
		}
		line := fmt.Sprintf("%s %s", mark, s.Date.String())
		if s.Record != nil && s.Record.Status != attendance.StatusPresent && s.Record.Status != attendance.StatusAbsent {
			line += fmt.Sprintf(" (%s)", s.Record.Status)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nحضور: %d | غياب: %d | غير مسجل: %d", log.Attended, log.Missed, log.Unrecorded))
	return b.String()
}

// userMessage maps service errors to a reply for the admin.
func userMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrAdminNotAuthorized):
		return "خطأ: ليس لديك صلاحية لتنفيذ هذا الأمر."
	case errors.Is(err, app.ErrInvalidID):
		return "خطأ: المعرّف غير صالح."
	case errors.Is(err, idb.ErrGroupNotFound):
		return "المجموعة غير موجودة."
	case errors.Is(err, idb.ErrStudentNotFound):
		return "الطالب غير موجود."
	default:
		return "حدث خطأ غير متوقع. حاول مرة أخرى لاحقاً."
	}
}
