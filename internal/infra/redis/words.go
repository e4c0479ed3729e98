package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const replaceChunk = 1000

var ErrNoClient = errors.New("redis client is nil")

// WordList keeps the dictionary as a Redis list so insertion order survives.
type WordList struct {
	client *redis.Client
	key    string
}

func NewWordList(client *redis.Client, key string) *WordList {
	return &WordList{client: client, key: key}
}

func (l *WordList) Words(ctx context.Context) ([]string, error) {
	if l == nil || l.client == nil {
		return nil, ErrNoClient
	}
	return l.client.LRange(ctx, l.key, 0, -1).Result()
}

// Replace swaps the stored list for words in a single MULTI/EXEC block.
func (l *WordList) Replace(ctx context.Context, words []string) error {
	if l == nil || l.client == nil {
		return ErrNoClient
	}
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, l.key)
		for start := 0; start < len(words); start += replaceChunk {
			end := min(start+replaceChunk, len(words))
			vals := make([]any, 0, end-start)
			for _, w := range words[start:end] {
				vals = append(vals, w)
			}
			p.RPush(ctx, l.key, vals...)
		}
		return nil
	})
	return err
}
