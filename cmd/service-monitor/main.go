package main

import (
	"Service_Monitor/internal/service-monitor/alert"
	"Service_Monitor/internal/service-monitor/api/handler"
	"Service_Monitor/internal/service-monitor/api/routes"
	"Service_Monitor/internal/service-monitor/config"
	"Service_Monitor/internal/service-monitor/notifier"
	"Service_Monitor/internal/service-monitor/prober"
	"Service_Monitor/internal/service-monitor/publisher"
	"Service_Monitor/internal/service-monitor/scheduler"
	"Service_Monitor/internal/service-monitor/service"
	"Service_Monitor/internal/service-monitor/store"
	"Service_Monitor/pkg/infra"
	"Service_Monitor/pkg/logger"
	"Service_Monitor/pkg/mail"
	"Service_Monitor/pkg/middleware"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()
	appConfig, err := config.LoadConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}

	// set up logger
	fileSyncer, err := logger.NewReopenableWriteSyncer(appConfig.Server.LogFile)
	if err != nil {
		log.Fatal(fmt.Sprintf("open log file error: %v", err))
	}
	defer fileSyncer.Close()
	zapLogger := logger.NewLogger(appConfig.Server.LogLevel, fileSyncer).With(zap.String("service.name", "service-monitor"))
	defer zapLogger.Sync()
	stopReload := logger.ReloadOnSignal(fileSyncer, zapLogger, syscall.SIGHUP)
	defer stopReload()

	services, err := config.LoadServices(appConfig.Monitor.ServicesFile)
	if err != nil {
		zapLogger.Fatal("failed to load services", zap.Error(err))
	}
	stateStore, err := store.NewStateStore(services)
	if err != nil {
		zapLogger.Fatal("failed to create state store", zap.Error(err))
	}

	// set up alert channels
	notifiers := []notifier.Notifier{
		notifier.NewWebhookNotifier(appConfig.Alert.Webhook, &http.Client{Timeout: appConfig.Alert.Timeout}),
	}
	if appConfig.Alert.Webhook == "" {
		zapLogger.Warn("ALERT_WEBHOOK is not set, webhook alerts are disabled")
	}
	if appConfig.Mail.Enabled() {
		mailSender := mail.NewMailSender(appConfig.Mail.Email, appConfig.Mail.Password, appConfig.Mail.Host, appConfig.Mail.Port)
		notifiers = append(notifiers, notifier.NewMailNotifier(mailSender, appConfig.Mail.AlertRecipients, appConfig.Server.DashboardTitle))
		zapLogger.Info("mail alerts enabled", zap.Strings("recipients", appConfig.Mail.AlertRecipients))
	}
	dispatcher := notifier.NewDispatcher(zapLogger, appConfig.Alert.Timeout, notifiers...)

	// set up check stream
	checkPublisher := publisher.NewNoopCheckPublisher()
	if appConfig.Kafka.Enabled() {
		checkPublisher = publisher.NewKafkaCheckPublisher(infra.NewKafkaWriter(appConfig.Kafka.Brokers, appConfig.Kafka.CheckTopic))
		zapLogger.Info("publishing check results to kafka", zap.Strings("brokers", appConfig.Kafka.Brokers), zap.String("topic", appConfig.Kafka.CheckTopic))
	}

	s := scheduler.NewServiceScheduler(
		zapLogger,
		services,
		prober.NewProber(),
		stateStore,
		alert.NewEvaluator(appConfig.Alert.ConsecutiveFailures),
		dispatcher,
		checkPublisher,
		scheduler.Options{
			Mode:     appConfig.Monitor.ScheduleMode,
			Interval: appConfig.Monitor.CheckInterval,
		},
	)

	monitorService := service.NewMonitorService(services, stateStore, startedAt)
	monitorHandler := handler.NewMonitorHandler(appConfig.Server.DashboardTitle, monitorService, handler.NewLogger(zapLogger))

	// Set up http server
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(zapLogger), middleware.Recovery(zapLogger))

	routes.SetUpMonitorRoutes(r, monitorHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}
	go func() {
		zapLogger.Info(fmt.Sprintf("%s running on %s", appConfig.Server.DashboardTitle, srv.Addr),
			zap.Int("services", len(services)),
			zap.Duration("check_interval", appConfig.Monitor.CheckInterval),
		)
		if e := srv.ListenAndServe(); e != nil && !errors.Is(e, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(e))
		}
	}()

	if err = s.Start(); err != nil {
		zapLogger.Fatal("failed to start scheduler", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown:", zap.Error(err))
	}
	s.Stop()
	zapLogger.Info("server exiting")
}
