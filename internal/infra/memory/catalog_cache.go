package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
)

// CatalogCache caches quiz and video lookups with TTL to avoid repeated
// hits on the backing store. Course listings and counts pass through;
// they are cheap and change on seeding only.
type CatalogCache struct {
	app.CatalogRepository

	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu      sync.RWMutex
	quizzes map[string]cachedQuiz
	videos  map[string]cachedVideo
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

type cachedVideo struct {
	video     domain.Video
	expiresAt time.Time
}

func NewCatalogCache(backing app.CatalogRepository, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		CatalogRepository: backing,
		ttl:               ttl,
		clock:             time.Now,
		rnd:               rand.New(rand.NewSource(time.Now().UnixNano())),
		quizzes:           make(map[string]cachedQuiz),
		videos:            make(map[string]cachedVideo),
	}
}

func (c *CatalogCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.quizzes[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("quiz:"+quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.quizzes[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.quiz, nil
		}
		c.mu.RUnlock()

		quiz, err := c.CatalogRepository.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.quizzes[quizID] = cachedQuiz{quiz: quiz, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *CatalogCache) GetVideo(ctx context.Context, videoID string) (domain.Video, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.videos[videoID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.video, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("video:"+videoID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.videos[videoID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.video, nil
		}
		c.mu.RUnlock()

		video, err := c.CatalogRepository.GetVideo(ctx, videoID)
		if err != nil {
			return domain.Video{}, err
		}

		c.mu.Lock()
		c.videos[videoID] = cachedVideo{video: video, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return video, nil
	})
	if err != nil {
		return domain.Video{}, err
	}
	return result.(domain.Video), nil
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
