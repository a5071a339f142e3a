package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"level-assessment-service/internal/domain"
)

// QuestionLoader fetches question sets from a backing store (built-in bank or Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, variant domain.Variant) (domain.QuestionSet, error)
}

// QuestionRepository caches question sets with TTL to avoid repeated loader hits.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Variant]cachedSet
}

type cachedSet struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Variant]cachedSet),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context, variant domain.Variant) ([]domain.Question, error) {
	if !variant.IsKnown() {
		variant = domain.VariantGeneral
	}
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[variant]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return cloneQuestions(entry.set.Questions), nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(variant), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[variant]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.set, nil
		}
		r.mu.RUnlock()

		set, err := r.loader.LoadQuestions(ctx, variant)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		expiresAt := now.Add(r.ttlWithJitter())
		r.mu.Lock()
		r.cache[variant] = cachedSet{set: set, expiresAt: expiresAt}
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneQuestions(result.(domain.QuestionSet).Questions), nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	r.mu.Lock()
	jitter := r.rnd.Int63n(int64(r.ttl)/10 + 1)
	r.mu.Unlock()
	return r.ttl + time.Duration(jitter)
}

func cloneQuestions(src []domain.Question) []domain.Question {
	out := make([]domain.Question, len(src))
	for i, q := range src {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
