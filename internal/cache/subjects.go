package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"skillur/internal/domain"
)

const subjectListTTL = 5 * time.Minute

// SubjectCache keeps the per-class subject listing warm; the listing is hit on
// every dashboard load while subjects change rarely.
type SubjectCache struct {
	client *redis.Client
}

func NewSubjectCache(client *redis.Client) *SubjectCache {
	return &SubjectCache{client: client}
}

func (c *SubjectCache) Get(ctx context.Context, class string) ([]domain.Subject, bool) {
	val, err := c.client.Get(ctx, "subjects:list:"+class).Result()
	if err != nil {
		return nil, false
	}
	var subjects []domain.Subject
	if json.Unmarshal([]byte(val), &subjects) != nil {
		return nil, false
	}
	return subjects, true
}

func (c *SubjectCache) Set(ctx context.Context, class string, subjects []domain.Subject) {
	data, err := json.Marshal(subjects)
	if err != nil {
		return
	}
	c.client.Set(ctx, "subjects:list:"+class, data, subjectListTTL)
}

// Invalidate drops the listing for one class after an admin write.
func (c *SubjectCache) Invalidate(ctx context.Context, class string) {
	c.client.Del(ctx, "subjects:list:"+class)
}
