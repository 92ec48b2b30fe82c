// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"

	"absentee_notification_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func adminHelpText() string {
	var helpText strings.Builder
	helpText.WriteString("أوامر المسؤول المتاحة:\n\n")
	helpText.WriteString("`/groups`\n - عرض المجموعات النشطة ومواعيدها.\n\n")
	helpText.WriteString("`/absent <GroupID> [YYYY-MM-DD]`\n - حساب الغائبين في يوم (اليوم افتراضياً) وتجهيز رسائل أولياء الأمور.\n\n")
	helpText.WriteString("`/sessions <GroupID> [YYYY-MM]`\n - عرض أيام الحصص للمجموعة في شهر.\n\n")
	helpText.WriteString("`/attendance <StudentID> [YYYY-MM]`\n - سجل حضور الطالب الشهري.\n\n")
	helpText.WriteString("`/help`\n - عرض هذه الرسالة.")
	return helpText.String()
}

func RegisterBotCommands(
	b *telebot.Bot,
	cfg *config.AppConfig, // For AdminTelegramID
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		if senderID == cfg.AdminTelegramID {
			logCtx.Info("User identified as Admin")
			return c.Send(fmt.Sprintf("أهلاً %s! البوت جاهز. استخدم /help لعرض الأوامر.", c.Sender().FirstName))
		}

		logCtx.Info("User is unknown")
		return c.Send("أهلاً! هذا البوت مخصص لإدارة السنتر فقط.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		if senderID == cfg.AdminTelegramID {
			return c.Send(adminHelpText(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
		}

		logCtx.Info("User is unknown, sending restricted help.")
		return c.Send("لا توجد أوامر متاحة لك. تواصل مع إدارة السنتر.")
	})
}
