package mvcc

import "github.com/pkg/errors"

// Sentinel errors for typed handling on the caller's side, same
// discipline as the teacher's tx.go.
var (
	// ErrWriteWriteConflict signals a conflict detected under Snapshot
	// Isolation: a concurrent transaction already committed an
	// overlapping writeSet.
	ErrWriteWriteConflict = errors.New("mvcc: write-write conflict")

	// ErrReadWriteConflict signals a conflict detected under
	// Serializable: a concurrent transaction committed a write to a key
	// in our readSet, or read a key in our writeSet.
	ErrReadWriteConflict = errors.New("mvcc: read-write conflict")

	// ErrNoTransaction — the command requires an active transaction and
	// there isn't one.
	ErrNoTransaction = errors.New("mvcc: no transaction in progress")

	// ErrTransactionActive — Begin was called over an already-open
	// transaction.
	ErrTransactionActive = errors.New("mvcc: transaction already in progress")

	// ErrTransactionFinished — an operation on a transaction that has
	// already committed or aborted.
	ErrTransactionFinished = errors.New("mvcc: transaction already finished")

	// ErrUnknownTransaction — a lookup by an id that was never allocated
	// in the registry.
	ErrUnknownTransaction = errors.New("mvcc: unknown transaction id")
)
