package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/StudioBookingService/internal/config"
	"github.com/m04kA/StudioBookingService/internal/integrations/africastalking"
	"github.com/m04kA/StudioBookingService/internal/integrations/emailjs"
	"github.com/m04kA/StudioBookingService/internal/notifications"
	"github.com/m04kA/StudioBookingService/pkg/logger"
	"github.com/m04kA/StudioBookingService/pkg/metrics"
)

// Воркер уведомлений: читает события booking.created из очереди
// и отправляет письмо клиенту и SMS оператору.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level,
		logger.WithFormat(cfg.Logs.Format),
		logger.WithService(cfg.Metrics.ServiceName+"_notifier"),
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting notification worker (queue=%s)", cfg.Notifications.Queue)

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName + "_notifier")

		// Воркер отдаёт только метрики на соседнем порту
		metricsAddr := fmt.Sprintf(":%d", cfg.Server.HTTPPort+1)
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server stopped: %v", err)
			}
		}()
		log.Info("Metrics exposed at %s%s", metricsAddr, cfg.Metrics.Path)
	}

	timeout := time.Duration(cfg.Notifications.Timeout) * time.Second
	email := emailjs.NewClient(emailjs.Config{
		URL:        cfg.Notifications.EmailJS.URL,
		ServiceID:  cfg.Notifications.EmailJS.ServiceID,
		TemplateID: cfg.Notifications.EmailJS.TemplateID,
		PublicKey:  cfg.Notifications.EmailJS.PublicKey,
		PrivateKey: cfg.Notifications.EmailJS.PrivateKey,
	}, timeout, log)
	sms := africastalking.NewClient(africastalking.Config{
		URL:      cfg.Notifications.AfricasTalking.URL,
		Username: cfg.Notifications.AfricasTalking.Username,
		APIKey:   cfg.Notifications.AfricasTalking.APIKey,
		SenderID: cfg.Notifications.AfricasTalking.SenderID,
	}, timeout, log)
	if !email.Configured() {
		log.Warn("EmailJS is not configured, client emails will only be logged")
	}
	if !sms.Configured() {
		log.Warn("Africa's Talking is not configured, operator SMS will only be logged")
	}

	sender := notifications.NewSender(email, sms, cfg.Notifications.OperatorPhone, metricsCollector, log)
	consumer := notifications.NewConsumer(cfg.Notifications.AMQPURL, cfg.Notifications.Queue, sender, timeout, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Notification worker stopped: %v", err)
		return
	}

	log.Info("Notification worker stopped gracefully")
}
