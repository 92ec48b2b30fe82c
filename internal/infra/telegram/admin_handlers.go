package telegram

import (
	"context"
	"errors"
	"time"

	"absentee_notification_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// refreshBtn re-runs the absentee computation for the group/date carried in
// its payload ("<group_id>|<YYYY-MM-DD>").
var refreshBtn = (&telebot.ReplyMarkup{}).Data("🔄 تحديث", "absent_refresh")

func refreshMarkup(groupID, date string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(refreshBtn.Text, refreshBtn.Unique, groupID, date)))
	return markup
}

// RegisterAdminHandlers registers handlers for admin commands.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, adminTelegramID int64, loc *time.Location, baseLogger *logrus.Entry) {
	b.Handle("/groups", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/groups",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(userMessage(app.ErrAdminNotAuthorized))
		}

		groups, err := adminService.ListGroups(ctx, c.Sender().ID)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to list groups")
			return c.Send(userMessage(err))
		}
		handlerLogger.WithField("groups_count", len(groups)).Info("Groups listed")
		return c.Send(renderGroups(groups))
	})

	b.Handle("/absent", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/absent",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(userMessage(app.ErrAdminNotAuthorized))
		}

		// Expected format: /absent <GroupID> [YYYY-MM-DD]
		args := c.Args()
		if len(args) < 1 || len(args) > 2 {
			return c.Send("صيغة غير صحيحة. استخدم: /absent <GroupID> [YYYY-MM-DD]")
		}
		date, err := parseDateArg(args, 1, loc)
		if err != nil {
			handlerLogger.WithField("arg", args[1]).Warn("Invalid date argument")
			return c.Send("خطأ: التاريخ يجب أن يكون بالصيغة YYYY-MM-DD.")
		}
		handlerLogger = handlerLogger.WithFields(logrus.Fields{"group_id": args[0], "date": date.String()})

		result, err := adminService.NotifyAbsentees(ctx, c.Sender().ID, args[0], date)
		if err != nil {
			handlerLogger.WithError(err).Warn("Failed to compute absentees")
			return c.Send(userMessage(err))
		}

		handlerLogger.WithFields(logrus.Fields{
			"total":              result.Report.Total,
			"absent":             len(result.Report.Absent),
			"notifications_sent": result.NotificationsSent(),
		}).Info("Absentee report prepared")

		if err := c.Send(app.RenderSummary(result), refreshMarkup(result.Report.Group.ID, date.String())); err != nil {
			return err
		}
		for _, p := range result.Payloads {
			if err := c.Send(app.NoticeCaption(p), app.NoticeButton(p), telebot.NoPreview); err != nil {
				handlerLogger.WithError(err).WithField("student_id", p.StudentID).Error("Failed to send notice link")
			}
		}
		return nil
	})

	b.Handle(&refreshBtn, func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "absent_refresh",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized callback")
			return c.Respond(&telebot.CallbackResponse{Text: userMessage(app.ErrAdminNotAuthorized)})
		}

		args := c.Args()
		if len(args) != 2 {
			handlerLogger.WithField("data", c.Callback().Data).Warn("Malformed refresh payload")
			return c.Respond(&telebot.CallbackResponse{Text: "بيانات غير صالحة."})
		}
		date, err := parseDateArg(args, 1, loc)
		if err != nil {
			return c.Respond(&telebot.CallbackResponse{Text: "بيانات غير صالحة."})
		}

		result, err := adminService.NotifyAbsentees(ctx, c.Sender().ID, args[0], date)
		if err != nil {
			handlerLogger.WithError(err).Warn("Failed to refresh absentees")
			return c.Respond(&telebot.CallbackResponse{Text: userMessage(err)})
		}
		if err := c.Edit(app.RenderSummary(result), refreshMarkup(args[0], args[1])); err != nil && !errors.Is(err, telebot.ErrSameMessageContent) {
			handlerLogger.WithError(err).Error("Failed to edit absentee summary")
		}
		return c.Respond(&telebot.CallbackResponse{Text: "تم التحديث"})
	})

	b.Handle("/sessions", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/sessions",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(userMessage(app.ErrAdminNotAuthorized))
		}

		// Expected format: /sessions <GroupID> [YYYY-MM]
		args := c.Args()
		if len(args) < 1 || len(args) > 2 {
			return c.Send("صيغة غير صحيحة. استخدم: /sessions <GroupID> [YYYY-MM]")
		}
		year, month, err := parseMonthArg(args, 1, loc)
		if err != nil {
			return c.Send("خطأ: الشهر يجب أن يكون بالصيغة YYYY-MM.")
		}

		sessions, err := adminService.GroupSessions(ctx, c.Sender().ID, args[0], year, month)
		if err != nil {
			handlerLogger.WithError(err).Warn("Failed to resolve sessions")
			return c.Send(userMessage(err))
		}
		return c.Send(renderSessions(sessions, year, month))
	})

	b.Handle("/attendance", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/attendance",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(userMessage(app.ErrAdminNotAuthorized))
		}

		// Expected format: /attendance <StudentID> [YYYY-MM]
		args := c.Args()
		if len(args) < 1 || len(args) > 2 {
			return c.Send("صيغة غير صحيحة. استخدم: /attendance <StudentID> [YYYY-MM]")
		}
		year, month, err := parseMonthArg(args, 1, loc)
		if err != nil {
			return c.Send("خطأ: الشهر يجب أن يكون بالصيغة YYYY-MM.")
		}

		monthly, err := adminService.StudentMonthlyLog(ctx, c.Sender().ID, args[0], year, month)
		if err != nil {
			handlerLogger.WithError(err).Warn("Failed to build monthly log")
			return c.Send(userMessage(err))
		}
		return c.Send(renderMonthlyLog(monthly))
	})
}
