package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go"
)

const (
	lockAttempts   = 3
	lockRetryDelay = 25 * time.Millisecond
)

// learnerLock guards one learner's schedules. Review completion for a pair
// holds the learner lock shared plus the pair mutex; tier reconciliation holds
// the learner lock exclusive, covering all of the learner's pairs at once.
type learnerLock struct {
	mu    sync.RWMutex
	pairs sync.Map // contentID -> *sync.Mutex
}

func (l *learnerLock) pair(contentID string) *sync.Mutex {
	if m, ok := l.pairs.Load(contentID); ok {
		return m.(*sync.Mutex)
	}
	m, _ := l.pairs.LoadOrStore(contentID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// lockTable hands out per-learner locks. Entries are never evicted; the table
// is bounded by the set of learners seen by one process.
type lockTable struct {
	mu       sync.Mutex
	learners map[string]*learnerLock
}

func newLockTable() *lockTable {
	return &lockTable{learners: make(map[string]*learnerLock)}
}

func (t *lockTable) learner(learnerID string) *learnerLock {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.learners[learnerID]
	if !ok {
		l = &learnerLock{}
		t.learners[learnerID] = l
	}
	return l
}

// acquire runs tryLock under a small bounded backoff. Exhausting the attempts
// surfaces ErrLockConflict, the engine's only retryable error.
func acquire(ctx context.Context, tryLock func() bool) error {
	err := retry.Do(
		func() error {
			if !tryLock() {
				return fmt.Errorf("lock held")
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(lockAttempts),
		retry.Delay(lockRetryDelay),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrLockConflict
	}
	return nil
}

// lockPair serializes mutations for one (learner, content) pair while leaving
// other pairs of the same learner free to proceed in parallel.
func (t *lockTable) lockPair(ctx context.Context, learnerID, contentID string) (func(), error) {
	l := t.learner(learnerID)
	if err := acquire(ctx, l.mu.TryRLock); err != nil {
		return nil, err
	}
	m := l.pair(contentID)
	if err := acquire(ctx, m.TryLock); err != nil {
		l.mu.RUnlock()
		return nil, err
	}
	return func() {
		m.Unlock()
		l.mu.RUnlock()
	}, nil
}

// lockLearner takes the learner's exclusive lock, blocking all of that
// learner's pair mutations for the duration. No cross-learner locking exists.
func (t *lockTable) lockLearner(ctx context.Context, learnerID string) (func(), error) {
	l := t.learner(learnerID)
	if err := acquire(ctx, l.mu.TryLock); err != nil {
		return nil, err
	}
	return l.mu.Unlock, nil
}
