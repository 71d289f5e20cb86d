package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samandr77/microservices/challenge/internal/api"
	"github.com/samandr77/microservices/challenge/internal/clients/users"
	"github.com/samandr77/microservices/challenge/internal/repository"
	"github.com/samandr77/microservices/challenge/internal/service"
	"github.com/samandr77/microservices/challenge/pkg/broker"
	"github.com/samandr77/microservices/challenge/pkg/config"
	"github.com/samandr77/microservices/challenge/pkg/job"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
	"github.com/samandr77/microservices/challenge/pkg/postgres"
)

const (
	ReadTimeout       = 3 * time.Second
	WriteTimeout      = 5 * time.Second
	IdleTimeout       = 60 * time.Second
	ReadHeaderTimeout = 1 * time.Second
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg, cfg.ServiceName)

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	pool, err := postgres.ConnectToPostgres(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)

	defer pool.Close()

	challengeRepo := repository.NewChallengeRepository(pool)
	failedLoginRepo := repository.NewFailedLoginRepository(pool)
	transactor := repository.NewTransactor(pool)
	usersClient := users.NewClient(cfg.Users)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	defer producer.Close()

	s := service.NewService(cfg.Challenge, transactor, challengeRepo, failedLoginRepo, producer, usersClient)

	jobs := job.NewRunner(l).
		Register("prune_challenges", cfg.Challenge.PruneInterval, s.PruneChallenges)
	jobs.Start(ctx)

	trustedProxies, err := cfg.Throttle.ProxyPrefixes()
	panicOnErr("parse trusted proxies", err)

	h := api.NewHandler(s, cfg.Challenge.CodeLength)
	mw := api.NewMiddleware(trustedProxies...)
	router := api.NewRouter(h, mw, cfg.Throttle)
	internalRouter := api.NewInternalRouter(h, mw, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	internalServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.InternalHTTPHost, strconv.Itoa(cfg.InternalHTTPPort)),
		Handler:           internalRouter,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("http server started", "port", cfg.HTTPPort, "tls", cfg.TLSEnabled())

		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.ServerCert, cfg.ServerKey)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		l.Debug("http server stopped")
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("internal http server started", "addr", internalServer.Addr)

		err := internalServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve internal: %s", err)
		}

		l.Debug("internal http server stopped")
	}()

	waitSignal(l, cancel, server, internalServer)
	jobs.Wait()
	wg.Wait()
}

func waitSignal(l *slog.Logger, cancel context.CancelFunc, servers ...*http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	for _, server := range servers {
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			l.Error("server shutdown", "error", err, "addr", server.Addr)
		}
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
