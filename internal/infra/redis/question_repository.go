package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"level-assessment-service/internal/domain"
)

// QuestionLoader fetches question sets from a backing store (built-in bank or Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, variant domain.Variant) (domain.QuestionSet, error)
}

// QuestionRepository caches question sets in Redis (hash per variant) and falls back to a loader on cache miss.
// Sets are stored as: HSET questions:{variant} version {n} data {json}
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, variant domain.Variant) ([]domain.Question, error) {
	if !variant.IsKnown() {
		variant = domain.VariantGeneral
	}
	key := r.setKey(variant)

	if set, ok := r.fromCache(ctx, key); ok {
		return set.Questions, nil
	}

	result, err, _ := r.sf.Do(string(variant), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := r.fromCache(ctx, key); ok {
			return set, nil
		}

		set, err := r.loader.LoadQuestions(ctx, variant)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		data, err := json.Marshal(set.Questions)
		if err != nil {
			return domain.QuestionSet{}, err
		}
		pipe := r.client.Pipeline()
		pipe.HSet(ctx, key, "version", set.Version, "data", string(data))
		if ttl := r.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("cache question set %s: %v", variant, err)
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.QuestionSet).Questions, nil
}

// fromCache returns a decoded set; unreadable entries count as a miss.
func (r *QuestionRepository) fromCache(ctx context.Context, key string) (domain.QuestionSet, bool) {
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil || fields["data"] == "" {
		return domain.QuestionSet{}, false
	}
	var questions []domain.Question
	if err := json.Unmarshal([]byte(fields["data"]), &questions); err != nil {
		return domain.QuestionSet{}, false
	}
	version, _ := strconv.Atoi(fields["version"])
	return domain.QuestionSet{Version: version, Questions: questions}, true
}

func (r *QuestionRepository) setKey(variant domain.Variant) string {
	return "questions:" + string(variant)
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
