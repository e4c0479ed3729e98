package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"T9-Keypad/internal/application"
	"T9-Keypad/internal/config"
	redisinfra "T9-Keypad/internal/infra/redis"
	"T9-Keypad/internal/repository"
	"T9-Keypad/internal/vocabulary"
)

func main() {
	var (
		target  string
		file    string
		batch   int
		timeout time.Duration
	)

	cfg, err := config.New()
	if err != nil {
		fatalf("load config: %v", err)
	}

	flag.StringVar(&target, "target", config.SourceMySQL, "seed target: mysql|redis")
	flag.StringVar(&file, "file", cfg.T9.Dictionary.Path, "newline separated words file")
	flag.IntVar(&batch, "batch", 500, "rows per INSERT for target=mysql")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	logger := application.NewLogger(cfg.Log.LevelStr, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	words, err := vocabulary.Load(ctx, vocabulary.NewFileSource(file))
	if err != nil {
		fatalf("read %s: %v", file, err)
	}
	logger.Info("words loaded", slog.String("file", file), slog.Int("words", len(words)))

	start := time.Now()
	switch target {
	case config.SourceMySQL:
		err = seedMySQL(ctx, cfg.MySQL, words, batch, logger)
	case config.SourceRedis:
		err = seedRedis(ctx, cfg.Redis, words, logger)
	default:
		fatalf("unknown target: %s", target)
	}
	if err != nil {
		fatalf("seed %s: %v", target, err)
	}

	logger.Info("seed complete", slog.String("target", target), slog.Int64("duration_ms", time.Since(start).Milliseconds()))
}

func seedMySQL(ctx context.Context, cfg config.MySQLConfig, words []string, batch int, logger *slog.Logger) error {
	db, err := repository.NewMySQL(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewWordRepository(db)
	inserted, err := repo.InsertBatch(ctx, words, batch)
	if err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("mysql seeded", slog.Int64("inserted", inserted), slog.Int64("total", total))
	return nil
}

func seedRedis(ctx context.Context, cfg config.RedisConfig, words []string, logger *slog.Logger) error {
	cli := redisinfra.New(cfg)
	defer cli.Close()

	if !cli.Ping(ctx, logger) {
		return fmt.Errorf("redis %s unreachable", cfg.Addr)
	}

	lock, err := redisinfra.AcquireLock(ctx, cli.Redis, cfg.WordsKey+":seed-lock", time.Minute)
	if err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			logger.Warn("seed lock release failed", slog.String("error", err.Error()))
		}
	}()

	if err := redisinfra.NewWordList(cli.Redis, cfg.WordsKey).Replace(ctx, words); err != nil {
		return err
	}
	logger.Info("redis seeded", slog.String("key", cfg.WordsKey), slog.Int("words", len(words)))
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
