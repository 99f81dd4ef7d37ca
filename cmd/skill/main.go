package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refuse_day_skill/internal/app"
	"refuse_day_skill/internal/domain/collection"
	"refuse_day_skill/internal/infra/alexa"
	"refuse_day_skill/internal/infra/config"
	"refuse_day_skill/internal/infra/holiday"
	"refuse_day_skill/internal/infra/logger"
	"refuse_day_skill/internal/infra/nycapi"
	"refuse_day_skill/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	log := logger.New(cfg)
	baseLogger := logrus.NewEntry(log)
	mainLogger := baseLogger.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Expected time zone: %s", cfg.LogLevel, cfg.Environment, cfg.ExpectedTimeZone)

	calendar, err := collection.NewCalendar(cfg.ExpectedTimeZone, nil)
	if err != nil {
		mainLogger.Fatalf("FATAL: %v", err)
	}

	// City APIs
	cityClient := nycapi.NewClient(cfg.HTTPClientTimeout, cfg.OutboundRatePerSec)
	geoclient := nycapi.NewGeoclientClient(cityClient, cfg.GeoclientBaseURL, cfg.GeoclientAppID, cfg.GeoclientAppKey)
	routingTime := nycapi.NewRoutingTimeClient(cityClient, cfg.RoutingTimeURL)
	var holidays collection.HolidayChecker = nycapi.NewHolidayClient(cityClient, cfg.HolidayURL)

	// Holiday cache, only with Redis configured
	var holidayScheduler *scheduler.HolidayScheduler
	if cfg.RedisAddr != "" {
		rdb, err := holiday.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not connect to Redis: %v", err)
		}
		defer rdb.Close()

		cached := holiday.NewCachedChecker(holidays, holiday.NewRedisStore(rdb), calendar, holiday.DefaultTTL, baseLogger)
		holidays = cached

		holidayScheduler = scheduler.NewHolidayScheduler(cached, baseLogger, calendar.Location(), cfg.CronSpecHolidayCheck, cfg.HTTPClientTimeout)
		if err := holidayScheduler.Start(); err != nil {
			mainLogger.Fatalf("FATAL: Could not start holiday scheduler: %v", err)
		}
		mainLogger.Info("Holiday cache enabled.")
	} else {
		mainLogger.Info("REDIS_ADDR not set, holiday checks go straight to DSNY.")
	}

	// Services
	decoder := collection.NewDecoder(collection.DefaultCodeTable())
	scheduleService := app.NewRefuseScheduleService(geoclient, routingTime, decoder, baseLogger)
	conversation := app.NewConversationService(
		scheduleService,
		alexa.NewDeviceClient(cfg.HTTPClientTimeout),
		holidays,
		calendar,
		cfg.ExpectedTimeZone,
		app.DefaultMessages(),
		baseLogger,
	)
	handler := alexa.NewHandler(conversation, cfg.SkillApplicationID, cfg.TurnTimeout, baseLogger)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Routes(cfg.InboundRatePerMinute),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		mainLogger.Infof("Skill endpoint listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.Fatalf("FATAL: Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		mainLogger.WithError(err).Error("Server forced to shutdown")
	}
	if holidayScheduler != nil {
		holidayScheduler.Stop()
	}
	mainLogger.Info("Application shut down gracefully.")
}
