package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/redis/go-redis/v9"

	"github.com/damascus-edu/training-center-bot/internal/adapter/googledrive"
	"github.com/damascus-edu/training-center-bot/internal/adapter/googlesheets"
	"github.com/damascus-edu/training-center-bot/internal/adapter/metagraph"
	"github.com/damascus-edu/training-center-bot/internal/app"
	"github.com/damascus-edu/training-center-bot/internal/config"
	"github.com/damascus-edu/training-center-bot/internal/controller"
	"github.com/damascus-edu/training-center-bot/internal/otp"
	"github.com/damascus-edu/training-center-bot/internal/repository"
	"github.com/damascus-edu/training-center-bot/internal/service"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	sugar := logger.Sugar()
	sugar.Infow("Starting training center bot",
		"environment", cfg.Environment,
		"admins", len(cfg.AdminUserIDs))

	if err := timeutil.SetLocation(cfg.Timezone); err != nil {
		sugar.Fatalw("❌ Invalid timezone", "timezone", cfg.Timezone, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongo, err := app.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		sugar.Fatalw("❌ Failed to connect to MongoDB", "error", err)
	}
	defer mongo.Close(context.Background())

	db := mongo.Database()
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	postRepo := repository.NewPostRepository(db)

	var otpStore *otp.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		otpStore = otp.NewStore(redisClient)
		sugar.Infow("✅ Redis OTP store configured", "addr", cfg.RedisAddr)
	} else {
		sugar.Warnw("⚠️ Redis is not configured, phone verification disabled")
	}

	var sheetsAdapter *googlesheets.Adapter
	if cfg.GoogleSheetsID != "" {
		sheetsAdapter, err = googlesheets.New(ctx, cfg.GoogleServiceAccountFile, cfg.GoogleSheetsID, cfg.GoogleSheetsName, logger)
		if err != nil {
			sugar.Fatalw("❌ Failed to init Google Sheets adapter", "error", err)
		}
	} else {
		sugar.Warnw("⚠️ Google Sheets is not configured, sheet posts disabled")
	}

	var driveAdapter *googledrive.Adapter
	if cfg.GoogleDriveFolderID != "" {
		driveAdapter, err = googledrive.New(ctx, cfg.GoogleServiceAccountFile, cfg.GoogleDriveFolderID, logger)
		if err != nil {
			sugar.Fatalw("❌ Failed to init Google Drive adapter", "error", err)
		}
	} else {
		sugar.Warnw("⚠️ Google Drive is not configured, course materials disabled")
	}

	metaAdapter := metagraph.New(cfg.MetaAccessToken, cfg.FacebookPageID, cfg.InstagramAccountID, logger)

	courseService := service.NewCourseService(courseRepo, driveOrNil(driveAdapter), logger)
	registrationService := service.NewRegistrationService(studentRepo, courseRepo, registrationRepo, paymentRepo, logger)
	postService := service.NewPostService(sheetsOrNil(sheetsAdapter), metaAdapter, postRepo, logger)
	notificationService := service.NewNotificationService(studentRepo, registrationRepo, paymentRepo, courseRepo, prefsRepo, logger)
	materialService := service.NewMaterialService(courseRepo, driveOrNil(driveAdapter), logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		sugar.Fatalw("❌ Failed to create bot", "error", err)
	}

	ctrl := controller.NewBotController(
		b,
		courseService,
		registrationService,
		postService,
		notificationService,
		materialService,
		otpStore,
		cfg.AdminUserIDs,
		logger,
	)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		sugar.Fatalw("❌ Failed to register handlers", "error", err)
	}

	postService.SetCallbacks(
		nil,
		func(ctx context.Context, message string) {
			ctrl.NotifyAdmins(ctx, message)
		},
	)

	scheduler := app.NewPostScheduler(postService, cfg.PostCheckInterval, logger, func(ctx context.Context, message string) {
		ctrl.NotifyAdmins(ctx, message)
	})
	scheduler.SetTickTask(func(ctx context.Context) {
		ctrl.DeliverReminders(ctx, notificationService, cfg.PostCheckInterval)
	})
	ctrl.SetPostTrigger(scheduler.TriggerNow)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	sugar.Infow("🚀 Bot is running", "check_interval", cfg.PostCheckInterval)
	if err := ctrl.Start(ctx); err != nil {
		sugar.Errorw("Bot stopped with error", "error", err)
	}

	sugar.Infow("👋 Shutting down")
}

// driveOrNil нужен, чтобы не передавать typed-nil указатель в интерфейс
func driveOrNil(a *googledrive.Adapter) service.DriveStorage {
	if a == nil {
		return nil
	}
	return a
}

func sheetsOrNil(a *googlesheets.Adapter) service.PostSource {
	if a == nil {
		return nil
	}
	return a
}
