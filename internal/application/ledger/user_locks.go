package ledger

import (
	"sync"

	"github.com/google/uuid"
)

// UserLocks serializes cart mutations and shopping-list export for a
// single user. A concurrent export clears the cart when it finishes;
// without the lock an add racing the export could be silently dropped.
type UserLocks struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewUserLocks creates an empty lock registry
func NewUserLocks() *UserLocks {
	return &UserLocks{}
}

// Lock acquires the lock for the given user and returns the unlock function
func (l *UserLocks) Lock(userID uuid.UUID) func() {
	v, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
