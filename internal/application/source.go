package application

import (
	"fmt"

	"T9-Keypad/internal/config"
	redisinfra "T9-Keypad/internal/infra/redis"
	"T9-Keypad/internal/repository"
	"T9-Keypad/internal/vocabulary"
)

// OpenSource returns the vocabulary source selected by
// cfg.T9.Dictionary.Source together with a func releasing its connections.
func OpenSource(cfg *config.Config) (vocabulary.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.T9.Dictionary.Source {
	case config.SourceFile:
		return vocabulary.NewFileSource(cfg.T9.Dictionary.Path), noop, nil
	case config.SourceMySQL:
		db, err := repository.NewMySQL(cfg.MySQL)
		if err != nil {
			return nil, noop, fmt.Errorf("open mysql: %w", err)
		}
		return repository.NewWordRepository(db), db.Close, nil
	case config.SourceRedis:
		cli := redisinfra.New(cfg.Redis)
		return redisinfra.NewWordList(cli.Redis, cfg.Redis.WordsKey), cli.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown dictionary source %q", cfg.T9.Dictionary.Source)
	}
}
