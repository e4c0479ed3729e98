package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"T9-Keypad/internal/api"
	"T9-Keypad/internal/config"
	metricsinfra "T9-Keypad/internal/infra/metrics"
	"T9-Keypad/internal/infra/ratelimit"
	"T9-Keypad/internal/service"
	"T9-Keypad/pkg/nethttp/runner"
)

type Application struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metricsinfra.Metrics
	words   *service.WordService
	gate    *ratelimit.SlidingWindow
	router  *api.Router

	errChan chan error
	wg      sync.WaitGroup
}

func New() *Application {
	return &Application{errChan: make(chan error)}
}

func (a *Application) Start(ctx context.Context, build string) error {
	if err := a.initCoreComponents(); err != nil {
		return fmt.Errorf("initCoreComponents(): %w", err)
	}

	if err := a.initWords(ctx); err != nil {
		a.logger.Error("dictionary load failed", slog.String("error", err.Error()))
		return fmt.Errorf("initWords(): %w", err)
	}

	if err := a.initGate(); err != nil {
		return fmt.Errorf("initGate(): %w", err)
	}

	if err := a.initPublicRouter(ctx); err != nil {
		return fmt.Errorf("initPublicRouter(): %w", err)
	}

	if err := a.initMetricsServer(ctx); err != nil {
		return fmt.Errorf("initMetricsServer(): %w", err)
	}

	a.logger.Info("application started",
		slog.String("build", build),
		slog.String("addr", a.cfg.HTTP.Addr),
		slog.String("dictionary_source", a.cfg.T9.Dictionary.Source),
	)
	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	errWg := sync.WaitGroup{}
	errWg.Add(1)

	go func() {
		defer errWg.Done()
		for err := range a.errChan {
			cancel()
			if err != nil {
				a.logger.Error("error in Wait", slog.String("error", err.Error()))
				appErr = err
			}
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errChan)
	errWg.Wait()

	a.logger.Info("application stopped")
	return appErr
}

func (a *Application) initCoreComponents() error {
	if err := a.initConfig(); err != nil {
		return fmt.Errorf("initConfig(): %w", err)
	}

	a.initLogger()
	a.metrics = metricsinfra.New()
	return nil
}

func (a *Application) initConfig() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *Application) initLogger() {
	a.logger = NewLogger(a.cfg.Log.LevelStr, a.cfg.Log.Format)
}

func (a *Application) initWords(ctx context.Context) error {
	src, closeSrc, err := OpenSource(a.cfg)
	if err != nil {
		a.metrics.IncDictionaryLoadError(a.cfg.T9.Dictionary.Source)
		return err
	}
	defer func() {
		if err := closeSrc(); err != nil {
			a.logger.Warn("dictionary source close failed", slog.String("error", err.Error()))
		}
	}()

	a.words = service.NewWordService(a.cfg.T9.MaxInputLength, a.logger, a.metrics)
	if err := a.words.Init(ctx, src); err != nil {
		a.metrics.IncDictionaryLoadError(a.cfg.T9.Dictionary.Source)
		return fmt.Errorf("load %s dictionary: %w", a.cfg.T9.Dictionary.Source, err)
	}
	return nil
}

func (a *Application) initGate() error {
	gate, err := ratelimit.NewSlidingWindow(a.cfg.RateLimit, ratelimit.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.gate = gate
	return nil
}

func (a *Application) initPublicRouter(ctx context.Context) error {
	a.router = api.New(a.cfg, a.logger, a.words, a.gate, a.metrics)

	_, err := runner.RunServer(ctx, a.router.Server, runner.Options{
		Name:            "public",
		Addr:            a.cfg.HTTP.Addr,
		ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
		Logger:          a.logger,
	}, a.errChan, &a.wg)
	return err
}

func (a *Application) initMetricsServer(ctx context.Context) error {
	if !a.cfg.Metrics.Enabled {
		return nil
	}
	if a.cfg.Metrics.Addr == "" {
		return errors.New("metrics addr is empty")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:         a.cfg.Metrics.Addr,
		Handler:      mux,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	_, err := runner.RunServer(ctx, srv, runner.Options{
		Name:            "metrics",
		Addr:            a.cfg.Metrics.Addr,
		ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
		Logger:          a.logger,
	}, a.errChan, &a.wg)
	return err
}
