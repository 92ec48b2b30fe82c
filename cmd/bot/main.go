package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"absentee_notification_bot/internal/app"
	"absentee_notification_bot/internal/infra/config"
	idb "absentee_notification_bot/internal/infra/database"
	"absentee_notification_bot/internal/infra/logger"
	"absentee_notification_bot/internal/infra/scheduler"
	"absentee_notification_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"admin_id":    cfg.AdminTelegramID,
		"timezone":    cfg.Timezone,
	}).Info("Configuration loaded")

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL, idb.PoolConfig{MaxOpenConns: cfg.DatabaseMaxOpenConns})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	groupRepo := idb.NewPostgresGroupRepository(db)
	studentRepo := idb.NewPostgresStudentRepository(db)
	attendanceRepo := idb.NewPostgresAttendanceRepository(db)

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"message":   c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	formatter := app.NewNotificationFormatter(cfg.MessagingBaseURL, cfg.PhoneCountryCode)
	absenteeService := app.NewAbsenteeService(groupRepo, studentRepo, attendanceRepo, logger.Component("absentee"))
	attendanceService := app.NewAttendanceService(studentRepo, groupRepo, attendanceRepo, logger.Component("attendance"))
	notificationService := app.NewNotificationServiceImpl(
		absenteeService,
		groupRepo,
		formatter,
		telegramClient,
		cfg.AdminTelegramID,
		cfg.CenterName,
		logger.Component("notification"),
	)
	adminService := app.NewAdminService(groupRepo, attendanceService, notificationService, cfg.AdminTelegramID)

	absenteeScheduler := scheduler.NewAbsenteeScheduler(
		notificationService,
		logger.Component("scheduler"),
		cfg.Location,
		cfg.CronSpecAbsenteeReport,
	)
	if err := absenteeScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start absentee scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlersLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(bot, cfg, handlersLogger)
	telegram.RegisterAdminHandlers(ctx, bot, adminService, cfg.AdminTelegramID, cfg.Location, handlersLogger)
	mainLogger.Info("Bot command handlers registered.")

	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	cancel()
	absenteeScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
