// internal/app/notification_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"
	domainTelegram "absentee_notification_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// NotificationService prepares absence notices for a group and hands them to staff.
type NotificationService interface {
	// NotifyAbsentees computes the absentees of a group on a date and formats
	// a notice for each one that can be reached.
	NotifyAbsentees(ctx context.Context, groupID string, date calendar.Date) (*NotifyResult, error)
	// SendDailyReport runs NotifyAbsentees for every active group meeting on
	// date and posts the results to the admin chat.
	SendDailyReport(ctx context.Context, date calendar.Date) error
}

// NotifyResult is the outcome of one "notify absentees" action.
type NotifyResult struct {
	Report   *AbsenteeReport
	Payloads []Payload
	// Unreachable are absentees with no contact number.
	Unreachable []*student.Student
}

// NotificationsSent mirrors the count the staff UI shows: one per prepared link.
func (r *NotifyResult) NotificationsSent() int { return len(r.Payloads) }

type NotificationServiceImpl struct {
	absentees      *AbsenteeService
	groupRepo      group.Repository
	formatter      *NotificationFormatter
	telegramClient domainTelegram.Client
	adminChatID    int64
	centerName     string
	logger         *logrus.Entry
}

func NewNotificationServiceImpl(
	absentees *AbsenteeService,
	gr group.Repository,
	formatter *NotificationFormatter,
	tc domainTelegram.Client,
	adminChatID int64,
	centerName string,
	logger *logrus.Entry,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		absentees:      absentees,
		groupRepo:      gr,
		formatter:      formatter,
		telegramClient: tc,
		adminChatID:    adminChatID,
		centerName:     centerName,
		logger:         logger.WithField("service", "notification"),
	}
}

func (s *NotificationServiceImpl) NotifyAbsentees(ctx context.Context, groupID string, date calendar.Date) (*NotifyResult, error) {
	report, err := s.absentees.ComputeAbsentees(ctx, groupID, date)
	if err != nil {
		return nil, err
	}

	mc := MessageContext{GroupName: report.Group.Name, Date: date, CenterName: s.centerName}
	payloads := s.formatter.FormatNotifications(report.Absent, mc)

	result := &NotifyResult{Report: report, Payloads: payloads}
	reachable := make(map[string]bool, len(payloads))
	for _, p := range payloads {
		reachable[p.StudentID] = true
	}
	for _, st := range report.Absent {
		if !reachable[st.ID] {
			result.Unreachable = append(result.Unreachable, st)
			s.logger.WithFields(logrus.Fields{
				"group_id":   groupID,
				"student_id": st.ID,
			}).Warn("Absent student has no contact number, skipping notice")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"group_id":           groupID,
		"date":               date.String(),
		"absent":             len(report.Absent),
		"notifications_sent": result.NotificationsSent(),
	}).Info("Absence notices prepared")
	return result, nil
}

func (s *NotificationServiceImpl) SendDailyReport(ctx context.Context, date calendar.Date) error {
	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active groups: %w", err)
	}
	if len(groups) == 0 {
		s.logger.Info("No active groups, nothing to report")
		return nil
	}

	var errs []error
	for _, g := range groups {
		groupLogger := s.logger.WithFields(logrus.Fields{"group_id": g.ID, "group_name": g.Name})
		if !g.ScheduleDays.Meets(date) {
			groupLogger.Debug("Group does not meet today, skipping")
			continue
		}

		result, err := s.NotifyAbsentees(ctx, g.ID, date)
		if err != nil {
			groupLogger.WithError(err).Error("Failed to compute absentees")
			errs = append(errs, fmt.Errorf("group %s: %w", g.ID, err))
			continue
		}
		if err := s.DeliverToStaff(s.adminChatID, result); err != nil {
			groupLogger.WithError(err).Error("Failed to deliver absentee report to admin")
			errs = append(errs, fmt.Errorf("group %s: %w", g.ID, err))
		}
	}
	return errors.Join(errs...)
}

// DeliverToStaff posts a summary to chatID followed by one message per notice,
// each carrying a button that opens the prepared deep link.
func (s *NotificationServiceImpl) DeliverToStaff(chatID int64, result *NotifyResult) error {
	if chatID == 0 {
		s.logger.Warn("Staff chat ID not configured. Cannot deliver absentee report.")
		return nil
	}

	if err := s.telegramClient.SendMessage(chatID, RenderSummary(result), nil); err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}

	for _, p := range result.Payloads {
		if err := s.telegramClient.SendMessage(chatID, NoticeCaption(p), &telebot.SendOptions{ReplyMarkup: NoticeButton(p)}); err != nil {
			// One failed message must not hold back the rest of the group.
			s.logger.WithError(err).WithField("student_id", p.StudentID).Error("Failed to send notice link to staff")
		}
	}
	return nil
}

// NoticeCaption and NoticeButton render one prepared notice for staff: the
// button opens the messaging app with the guardian chat and text filled in.
func NoticeCaption(p Payload) string {
	return fmt.Sprintf("%s (%s)", p.StudentName, p.Phone)
}

func NoticeButton(p Payload) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL("📲 إرسال واتساب", p.Link)))
	return markup
}

// RenderSummary is the staff-facing header for one group's absentee report.
func RenderSummary(result *NotifyResult) string {
	r := result.Report
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 المجموعة: %s\n", r.Group.Name))
	b.WriteString(fmt.Sprintf("📅 التاريخ: %s\n", r.Date.String()))
	b.WriteString(fmt.Sprintf("👥 العدد: %d | ✅ حضور: %d | ❌ غياب: %d\n", r.Total, len(r.Present), len(r.Absent)))

	if len(r.Absent) == 0 {
		b.WriteString("\nجميع الطلاب حضروا اليوم!")
		return b.String()
	}

	b.WriteString("\nالغائبون:\n")
	for _, st := range r.Absent {
		line := "• " + st.Name
		if r.Marks[st.ID] == attendance.MarkUnrecorded {
			line += " (لم يُسجَّل)"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\n📨 رسائل جاهزة: %d", result.NotificationsSent()))
	if len(result.Unreachable) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ بدون رقم تواصل: %d", len(result.Unreachable)))
	}
	return b.String()
}
