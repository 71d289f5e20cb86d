package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samandr77/microservices/challenge/internal/notifier"
	"github.com/samandr77/microservices/challenge/internal/notifier/clients/mailer"
	"github.com/samandr77/microservices/challenge/internal/notifier/clients/sms"
	"github.com/samandr77/microservices/challenge/internal/notifier/events"
	"github.com/samandr77/microservices/challenge/pkg/broker"
	"github.com/samandr77/microservices/challenge/pkg/config"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

const (
	readTimeout       = 3 * time.Second
	readHeaderTimeout = time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("create config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg, cfg.ServiceName+"-notifier")

	s := notifier.NewService(mailer.New(cfg.Mailer), sms.New(cfg.SMS))

	consumer := broker.NewConsumer(l, cfg.Kafka.Brokers, cfg.Kafka.ConsumerID, cfg.Kafka.NotificationTopic)
	defer consumer.Close()

	eventHandler := events.NewEventHandler(s)

	consumer.
		Handle(cfg.Kafka.NotificationTopic, eventHandler.SendNotification).
		Consume(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           mux,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panic(err)
		}
	}()

	l.Info("notifier started", "topic", cfg.Kafka.NotificationTopic, "metrics_port", cfg.MetricsPort)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		l.Error("shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
