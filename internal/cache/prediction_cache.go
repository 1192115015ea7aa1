package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"innerparts/internal/model"
)

// PredictionCache handles Redis operations for computed prediction results.
// The pipeline is deterministic, so identical answer sets can share one
// cached result.
type PredictionCache interface {
	Get(ctx context.Context, answers model.Answers) (*model.PredictionResult, error)
	Set(ctx context.Context, answers model.Answers, result *model.PredictionResult) error
}

type predictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(client *redis.Client) PredictionCache {
	return &predictionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *predictionCache) key(answers model.Answers) string {
	return fmt.Sprintf("predict:%s", AnswerDigest(answers))
}

func (c *predictionCache) Get(ctx context.Context, answers model.Answers) (*model.PredictionResult, error) {
	data, err := c.client.Get(ctx, c.key(answers)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.PredictionResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *predictionCache) Set(ctx context.Context, answers model.Answers, result *model.PredictionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(answers), data, c.ttl).Err()
}

// AnswerDigest builds a canonical digest of an answer set: keys sorted,
// key=value pairs joined, then hashed. Two maps with equal contents
// always digest identically.
func AnswerDigest(answers model.Answers) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(answers[k])
		sb.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
