package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stratocost/stratocost/internal/analysis"
	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/apiserver/handler"
	"github.com/stratocost/stratocost/internal/apiserver/middleware"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/common/config"
	"github.com/stratocost/stratocost/internal/pricing/cache"
	"github.com/stratocost/stratocost/internal/pricing/provider"
	"github.com/stratocost/stratocost/pkg/logger"
	"github.com/stratocost/stratocost/pkg/metrics"
	"github.com/stratocost/stratocost/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   cnst.AppName,
		Short: "TCO analysis computation and versioning server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Get())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", cnst.TCOServerYaml, "path to the configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() error {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting tcoserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath),
		zap.Int("port", cfg.Port))

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	pricingCache, err := cache.NewCache(log, &cfg.Pricing.Cache)
	if err != nil {
		return fmt.Errorf("initialize pricing cache: %w", err)
	}
	defer func() {
		if err := pricingCache.Close(); err != nil {
			log.Error("failed to close pricing cache", zap.Error(err))
		}
	}()

	m := metrics.New(cfg.Metrics)
	catalogs := provider.New(db, pricingCache, log)
	svc := analysis.NewService(db, catalogs, m, log)
	jwtService := middleware.NewJWTService(cfg.JWT)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.New(svc, catalogs, db, jwtService, m, log).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
