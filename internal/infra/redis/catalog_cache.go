package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
)

// CatalogCache caches quiz and video documents in Redis as JSON strings and
// falls back to the backing repository on cache miss. Keys:
//
//	GET catalog:quiz:{quizID}
//	GET catalog:video:{videoID}
//
// Not-found results are never cached; a missing id always reaches the
// backing store. Course listings and counts pass through uncached.
type CatalogCache struct {
	app.CatalogRepository

	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogCache(client *redis.Client, backing app.CatalogRepository, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		CatalogRepository: backing,
		client:            client,
		ttl:               ttl,
		rnd:               rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	key := c.quizKey(quizID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err == nil {
			return quiz, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var quiz domain.Quiz
			if err := json.Unmarshal(raw, &quiz); err == nil {
				return quiz, nil
			}
		}

		quiz, err := c.CatalogRepository.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		c.store(ctx, key, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *CatalogCache) GetVideo(ctx context.Context, videoID string) (domain.Video, error) {
	key := c.videoKey(videoID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var video domain.Video
		if err := json.Unmarshal(raw, &video); err == nil {
			return video, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var video domain.Video
			if err := json.Unmarshal(raw, &video); err == nil {
				return video, nil
			}
		}

		video, err := c.CatalogRepository.GetVideo(ctx, videoID)
		if err != nil {
			return domain.Video{}, err
		}
		c.store(ctx, key, video)
		return video, nil
	})
	if err != nil {
		return domain.Video{}, err
	}
	return result.(domain.Video), nil
}

// store is best-effort; a failed cache write never fails the read path.
func (c *CatalogCache) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *CatalogCache) quizKey(quizID string) string {
	return "catalog:quiz:" + quizID
}

func (c *CatalogCache) videoKey(videoID string) string {
	return "catalog:video:" + videoID
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
