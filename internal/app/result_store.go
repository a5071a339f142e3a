package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"level-assessment-service/internal/domain"
)

const (
	// DefaultCapacity bounds the local history per user.
	DefaultCapacity = 10
	// DefaultMirrorTimeout bounds a single fire-and-forget remote write.
	DefaultMirrorTimeout = 10 * time.Second

	resultsKeyPrefix = "assessment_results_"
)

// ResultStoreOptions tunes the local cap and the remote write timeout.
type ResultStoreOptions struct {
	Capacity      int
	MirrorTimeout time.Duration
}

// ResultStore keeps a bounded most-recent-first history per user in the local
// store and mirrors each saved result to the remote service on a best-effort basis.
type ResultStore struct {
	local    KeyValueStore
	remote   RemoteDataService
	identity IdentityProvider
	notifier Notifier

	capacity      int
	mirrorTimeout time.Duration

	// mu guards the read-modify-write of a user's list, including cap-and-evict.
	mu       sync.Mutex
	inflight sync.WaitGroup
}

func NewResultStore(local KeyValueStore, remote RemoteDataService, identity IdentityProvider, notifier Notifier, opts ResultStoreOptions) *ResultStore {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.MirrorTimeout <= 0 {
		opts.MirrorTimeout = DefaultMirrorTimeout
	}
	return &ResultStore{
		local:         local,
		remote:        remote,
		identity:      identity,
		notifier:      notifier,
		capacity:      opts.Capacity,
		mirrorTimeout: opts.MirrorTimeout,
	}
}

// ResultsKey returns the local storage key for user.
func ResultsKey(user *domain.User) string {
	return resultsKeyPrefix + user.StorageKey()
}

// Save prepends result to the caller's local history, evicting the oldest
// entry past capacity, then starts the remote mirror write without waiting for it.
func (s *ResultStore) Save(ctx context.Context, result domain.Result) error {
	user := s.identity.CurrentUser(ctx)
	key := ResultsKey(user)

	err := s.update(ctx, key, func(list []domain.Result) ([]domain.Result, error) {
		list = append([]domain.Result{result}, list...)
		if len(list) > s.capacity {
			list = list[:s.capacity]
		}
		return list, nil
	})

	s.mirror(ctx, user, key, result)
	return err
}

// List returns the caller's cached results, newest first.
func (s *ResultStore) List(ctx context.Context) ([]domain.Result, error) {
	key := ResultsKey(s.identity.CurrentUser(ctx))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx, key)
}

// LatestDescriptor returns the level of the most recent cached result.
func (s *ResultStore) LatestDescriptor(ctx context.Context) (domain.Descriptor, error) {
	list, err := s.List(ctx)
	if err != nil {
		return domain.Descriptor{}, err
	}
	if len(list) == 0 {
		return domain.Descriptor{}, domain.ErrNoResults
	}
	return list[0].Descriptor(), nil
}

// Delete removes one result from the caller's local history after confirmation.
// The remote mirror is never touched.
func (s *ResultStore) Delete(ctx context.Context, id int64) error {
	if !s.notifier.Confirm(ctx, ConfirmDeleteResult) {
		return domain.ErrDeleteNotConfirmed
	}
	key := ResultsKey(s.identity.CurrentUser(ctx))
	return s.update(ctx, key, func(list []domain.Result) ([]domain.Result, error) {
		kept := make([]domain.Result, 0, len(list))
		for _, r := range list {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(list) {
			return nil, domain.ErrResultNotFound
		}
		return kept, nil
	})
}

// IntegrateLevel publishes the caller's current level to the remote service.
// Unlike Save it is synchronous and failures are surfaced to the user.
func (s *ResultStore) IntegrateLevel(ctx context.Context, level, description string) error {
	user := s.identity.CurrentUser(ctx)
	if err := s.remote.SaveCurrentLevel(ctx, userOrAnonymous(user), level, description); err != nil {
		log.Printf("save current level for %s: %v", user.StorageKey(), err)
		s.notifier.Alert(ctx, NoticeIntegrateFailed)
		return fmt.Errorf("%w: %w", domain.ErrIntegrateFailed, err)
	}
	return nil
}

// Flush blocks until in-flight mirror writes have finished.
func (s *ResultStore) Flush() {
	s.inflight.Wait()
}

func (s *ResultStore) update(ctx context.Context, key string, fn func([]domain.Result) ([]domain.Result, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.readLocked(ctx, key)
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		if err := s.local.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove local results: %w", err)
		}
		return nil
	}
	raw, err := encodeResults(list)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := s.local.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write local results: %w", err)
	}
	return nil
}

// readLocked loads the cached list; malformed data reads as an empty history.
func (s *ResultStore) readLocked(ctx context.Context, key string) ([]domain.Result, error) {
	raw, ok, err := s.local.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read local results: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	list, err := decodeResults(raw)
	if err != nil {
		log.Printf("discarding malformed results under %s: %v", key, err)
		return nil, nil
	}
	return list, nil
}

func (s *ResultStore) mirror(ctx context.Context, user *domain.User, key string, result domain.Result) {
	if s.remote == nil {
		return
	}
	owner := userOrAnonymous(user)
	detached := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(detached, s.mirrorTimeout)
		defer cancel()
		if err := s.remote.SaveResult(ctx, owner, result); err != nil {
			log.Printf("remote mirror of result %d for %s failed: %v", result.ID, key, err)
		}
	}()
}

func userOrAnonymous(user *domain.User) domain.User {
	if user == nil {
		return domain.User{Role: domain.RoleStudent, DisplayName: domain.AnonymousKey}
	}
	return *user
}
