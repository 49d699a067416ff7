package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/api"
	"github.com/youruser/canvasapp/internal/config"
	"github.com/youruser/canvasapp/internal/stores"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logLevel := flag.String("loglevel", cfg.LogLevel, "Set the logging level: debug, info, warn, error, fatal, panic")
	port := flag.String("port", cfg.Port, "Set the server listen port")
	storage := flag.String("storage", cfg.StorageType, "Photo library backend: memory, filesystem, sqlite, s3")
	flag.Parse()
	cfg.LogLevel, cfg.Port, cfg.StorageType = *logLevel, *port, *storage

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}
	logrus.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := stores.GetStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open photo library")
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	r := gin.Default()
	api.RegisterRoutes(r, api.NewServer(cfg, store))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logrus.WithField("addr", "http://localhost:"+cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
