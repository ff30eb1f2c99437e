package mvcc

import (
	"sync"

	"github.com/pkg/errors"
)

// Database owns the store, the transaction registry, and the single
// mutex that serializes every mutation site against visibility reads —
// spec.md §5 mandates exactly this: Begin, Finish, and Set/Delete's
// invalidate step all happen under one lock, so no reader ever observes
// a half-committed transaction.
//
// Unlike the teacher's MVCCMap, Database carries no background
// goroutines: spec.md's Non-goals rule out both version GC and deadlock
// avoidance, so there is nothing left for a GC or detector loop to do.
type Database struct {
	mu sync.Mutex

	store *store
	reg   *registry

	cfg config
}

// NewDatabase creates an empty database. defaultIsolation defaults to
// Serializable, the strictest level, unless overridden with
// WithDefaultIsolation.
func NewDatabase(opts ...Option) *Database {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Database{
		store: newStore(),
		reg:   newRegistry(),
		cfg:   cfg,
	}
}

// SetDefaultIsolation changes the isolation level applied to every
// subsequent Begin. It does not affect transactions already in
// progress.
func (db *Database) SetDefaultIsolation(level IsolationLevel) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cfg.defaultIsolation = level
}

// Begin allocates a new transaction at the database's current default
// isolation level and records it InProgress.
func (db *Database) Begin() *Transaction {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := db.reg.begin(db.cfg.defaultIsolation)
	db.cfg.logger.Debug("begin transaction", "txID", tx.ID, "isolation", tx.Isolation.String())
	return tx
}

// Status reports id's status, total over every id ever allocated.
// Returns ErrUnknownTransaction for an id that was never allocated.
func (db *Database) Status(id uint64) (TxStatus, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.reg.statusErr(id)
}

// Finish transitions tx to status. Committing a Snapshot or Serializable
// transaction first runs the conflict detector; on conflict, tx is
// recursively finished as Aborted — so the registry already reflects the
// abort — before the conflict error is returned to the caller. Finishing
// a transaction that has already left InProgress returns
// ErrTransactionFinished instead of silently re-finishing it.
func (db *Database) Finish(tx *Transaction, status TxStatus) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if tx.Status != InProgress {
		return errors.Wrapf(ErrTransactionFinished, "tx %d already %s", tx.ID, tx.Status)
	}
	return db.finishLocked(tx, status)
}

func (db *Database) finishLocked(tx *Transaction, status TxStatus) error {
	if status == Committed {
		if err := checkConflict(db.reg, tx); err != nil {
			db.cfg.logger.Warn("commit conflict, aborting", "txID", tx.ID, "error", err)
			_ = db.finishLocked(tx, Aborted)
			return err
		}
	}

	tx.Status = status
	db.cfg.logger.Debug("finish transaction", "txID", tx.ID, "status", status.String())
	return nil
}

// Get walks key's chain, newest first, and returns the first version
// visible to tx. It records key in tx's readSet regardless of whether a
// live version is found — Serializable still needs to know an "empty"
// read happened.
func (db *Database) Get(tx *Transaction, key string) (string, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx.addRead(key)
	for _, v := range db.store.chain(key) {
		if visible(db.reg, tx, v) {
			return v.Value, true
		}
	}
	return "", false
}

// Set invalidates any version of key currently visible to tx, then
// appends a new live version written by tx. Always adds key to tx's
// writeSet, even if no prior version existed.
func (db *Database) Set(tx *Transaction, key, value string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.invalidateLocked(tx, key)
	tx.addWrite(key)
	db.store.append(key, newVersion(tx.ID, value))
}

// Delete invalidates any version of key currently visible to tx. key is
// added to tx's writeSet only if a live version was actually found —
// deleting an absent key is a no-op that leaves writeSet unchanged.
func (db *Database) Delete(tx *Transaction, key string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.invalidateLocked(tx, key) {
		tx.addWrite(key)
	}
}

// invalidateLocked marks every version of key that tx can currently see
// as live as finished by tx. Returns whether it found one. Must be
// called with db.mu held.
func (db *Database) invalidateLocked(tx *Transaction, key string) bool {
	found := false
	for _, v := range db.store.chain(key) {
		if visible(db.reg, tx, v) {
			db.store.markFinish(v, tx.ID)
			found = true
		}
	}
	return found
}
