package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cbsinteractive/timecode-service/config"
	"github.com/cbsinteractive/timecode-service/db"
	"github.com/cbsinteractive/timecode-service/service"
	"github.com/cbsinteractive/timecode-service/service/exceptions"
	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatal(err)
	}

	repo, closeRepo, err := repository(cfg, logger)
	if err != nil {
		logger.Fatal("unable to initialize storage: ", err)
	}
	defer closeRepo()

	reporter, err := exceptions.New(cfg.SentryDSN, cfg.Env, logger)
	if err != nil {
		logger.Fatal("unable to initialize sentry: ", err)
	}

	srv := service.NewServer(cfg, repo, logger, reporter)
	httpSrv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		Handler: handlers.LoggingHandler(logger.Writer(), srv.Handler()),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		logger.WithField("signal", (<-sig).String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("shutdown")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":       httpSrv.Addr,
		"defaultFPS": cfg.DefaultFPS,
		"env":        cfg.Env,
	}).Info("listening")
	if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server encountered a fatal error: ", err)
	}
	<-done
}

// repository returns Redis storage when an address is configured and
// in-process storage otherwise
func repository(cfg *config.Config, logger *logrus.Logger) (db.Repository, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR is not set, timelines are kept in memory")
		return db.NewMemoryRepository(), func() {}, nil
	}
	r, err := db.NewRedisRepository(&db.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return r, func() {
		if err := r.Close(); err != nil {
			logger.WithError(err).Warn("closing redis")
		}
	}, nil
}
