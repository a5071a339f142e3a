package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"level-assessment-service/internal/domain"
	"level-assessment-service/internal/infra/memory"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) SaveResult(ctx context.Context, user domain.User, result domain.Result) error {
	args := m.Called(ctx, user, result)
	return args.Error(0)
}

func (m *mockRemote) FetchResultsForTeacher(ctx context.Context, teacher domain.User) ([]domain.StudentResult, error) {
	args := m.Called(ctx, teacher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentResult), args.Error(1)
}

func (m *mockRemote) SaveCurrentLevel(ctx context.Context, user domain.User, level, description string) error {
	args := m.Called(ctx, user, level, description)
	return args.Error(0)
}

type stubNotifier struct {
	mu      sync.Mutex
	alerts  []string
	confirm bool
	asked   int
}

func (n *stubNotifier) Alert(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *stubNotifier) Confirm(context.Context, string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.asked++
	return n.confirm
}

func sampleResult(id int64, correct int) domain.Result {
	return domain.Result{
		ID:           id,
		Level:        "B1",
		Description:  "Intermediate",
		CorrectCount: correct,
		Variant:      domain.VariantIELTS,
		TakenAt:      time.UnixMilli(id).UTC(),
		Answers: []domain.Answer{
			{QuestionIndex: 0, SelectedIndex: 2, IsCorrect: true, Section: "Vocabulary", Variant: domain.VariantIELTS},
			{QuestionIndex: 1, SelectedIndex: 0, IsCorrect: false, Section: "Vocabulary", Variant: domain.VariantIELTS},
		},
	}
}

func newStore(t *testing.T, remote RemoteDataService, notifier Notifier) (*ResultStore, *memory.KVStore, context.Context) {
	t.Helper()
	user := domain.NewUser("Ana.Lopez@School.test", "student", "Ana")
	kv := memory.NewKVStore()
	store := NewResultStore(kv, remote, StaticIdentity{User: &user}, notifier, ResultStoreOptions{MirrorTimeout: time.Second})
	return store, kv, context.Background()
}

func TestSaveRoundTrip(t *testing.T) {
	remote := memory.NewRemoteService()
	store, _, ctx := newStore(t, remote, &stubNotifier{})

	r := sampleResult(1714816200000, 6)
	require.NoError(t, store.Save(ctx, r))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r, list[0])
}

func TestSaveEvictsOldestBeyondCapacity(t *testing.T) {
	remote := memory.NewRemoteService()
	store, _, ctx := newStore(t, remote, &stubNotifier{})

	for i := int64(1); i <= 11; i++ {
		require.NoError(t, store.Save(ctx, sampleResult(i, int(i%10))))
	}
	store.Flush()

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, DefaultCapacity)
	assert.Equal(t, int64(11), list[0].ID, "newest first")
	assert.Equal(t, int64(2), list[len(list)-1].ID, "oldest evicted")

	assert.Len(t, remote.Results(), 11, "remote mirror is not capped")
}

func TestStorageKeyIsNormalizedPerUser(t *testing.T) {
	remote := memory.NewRemoteService()
	store, kv, ctx := newStore(t, remote, &stubNotifier{})
	require.NoError(t, store.Save(ctx, sampleResult(5, 5)))

	_, ok, _ := kv.Get(ctx, "assessment_results_ana_lopez_school_test")
	assert.True(t, ok)
	assert.Equal(t, "assessment_results_anonymous", ResultsKey(nil))
}

func TestCorruptCacheReadsAsEmpty(t *testing.T) {
	store, kv, ctx := newStore(t, memory.NewRemoteService(), &stubNotifier{})
	require.NoError(t, kv.Set(ctx, "assessment_results_ana_lopez_school_test", "{oops"))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the next save starts a fresh history
	require.NoError(t, store.Save(ctx, sampleResult(9, 9)))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoteSaveFailureIsSwallowed(t *testing.T) {
	remote := &mockRemote{}
	remote.On("SaveResult", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("backend down")).Once()
	notifier := &stubNotifier{}
	store, _, ctx := newStore(t, remote, notifier)

	require.NoError(t, store.Save(ctx, sampleResult(3, 3)))
	store.Flush()

	remote.AssertExpectations(t)
	assert.Empty(t, notifier.alerts, "remote save failures are never surfaced")
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "local cache stays authoritative")
}

func TestMirrorOutlivesCallerContext(t *testing.T) {
	remote := &mockRemote{}
	remote.On("SaveResult", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }),
		mock.Anything, mock.Anything).Return(nil).Once()
	store, _, _ := newStore(t, remote, &stubNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, store.Save(ctx, sampleResult(4, 4)))
	cancel()
	store.Flush()
	remote.AssertExpectations(t)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	notifier := &stubNotifier{}
	store, _, ctx := newStore(t, memory.NewRemoteService(), notifier)
	require.NoError(t, store.Save(ctx, sampleResult(1, 1)))
	require.NoError(t, store.Save(ctx, sampleResult(2, 2)))

	err := store.Delete(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrDeleteNotConfirmed)
	list, _ := store.List(ctx)
	assert.Len(t, list, 2)

	notifier.confirm = true
	require.NoError(t, store.Delete(ctx, 1))
	list, _ = store.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	assert.ErrorIs(t, store.Delete(ctx, 1), domain.ErrResultNotFound)
	assert.Equal(t, 3, notifier.asked)
}

func TestDeleteLastResultRemovesKey(t *testing.T) {
	store, kv, ctx := newStore(t, memory.NewRemoteService(), &stubNotifier{confirm: true})
	require.NoError(t, store.Save(ctx, sampleResult(1, 1)))
	require.NoError(t, store.Delete(ctx, 1))

	_, ok, _ := kv.Get(ctx, "assessment_results_ana_lopez_school_test")
	assert.False(t, ok)
}

func TestIntegrateLevel(t *testing.T) {
	remote := &mockRemote{}
	remote.On("SaveCurrentLevel", mock.Anything, mock.Anything, "B2", "Upper Intermediate").Return(nil).Once()
	notifier := &stubNotifier{}
	store, _, ctx := newStore(t, remote, notifier)

	require.NoError(t, store.IntegrateLevel(ctx, "B2", "Upper Intermediate"))
	assert.Empty(t, notifier.alerts)
	remote.AssertExpectations(t)
}

func TestIntegrateLevelFailureAlerts(t *testing.T) {
	remote := &mockRemote{}
	remote.On("SaveCurrentLevel", mock.Anything, mock.Anything, "C1", "Advanced").
		Return(fmt.Errorf("dial tcp: connection refused")).Once()
	notifier := &stubNotifier{}
	store, _, ctx := newStore(t, remote, notifier)

	err := store.IntegrateLevel(ctx, "C1", "Advanced")
	assert.ErrorIs(t, err, domain.ErrIntegrateFailed)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, NoticeIntegrateFailed, notifier.alerts[0])
	assert.NotContains(t, notifier.alerts[0], "dial tcp")
}

func TestLatestDescriptor(t *testing.T) {
	store, _, ctx := newStore(t, memory.NewRemoteService(), &stubNotifier{})
	_, err := store.LatestDescriptor(ctx)
	assert.ErrorIs(t, err, domain.ErrNoResults)

	r := sampleResult(1, 1)
	r.Level, r.Description = "Band 6.0", "Competent User"
	require.NoError(t, store.Save(ctx, r))
	d, err := store.LatestDescriptor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Band 6.0", d.Level)
}

func TestConcurrentSavesRespectCapacity(t *testing.T) {
	remote := memory.NewRemoteService()
	store, _, ctx := newStore(t, remote, &stubNotifier{})

	var wg sync.WaitGroup
	for i := 1; i <= 25; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = store.Save(ctx, sampleResult(id, 5))
		}(int64(i))
	}
	wg.Wait()
	store.Flush()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, DefaultCapacity)
	assert.Len(t, remote.Results(), 25)
}
