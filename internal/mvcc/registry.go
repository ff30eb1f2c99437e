package mvcc

import "github.com/pkg/errors"

// registry is the transaction id allocator and the id → Transaction
// mapping. Per spec.md §4.5's note that the conflict detector scans a
// full id range, it backs the mapping with a dense vector (index i holds
// the transaction with id i+1) rather than a general map, so "lookup by
// id" is O(1) for each id of a scan up to the counter — the teacher's
// activeTxs map only ever needed O(1) point lookups, so this is the one
// place txkv's registry diverges from its shape.
type registry struct {
	txns   []*Transaction
	nextID uint64
}

func newRegistry() *registry {
	return &registry{}
}

// begin allocates the next id and captures the snapshot-of-in-progress
// set *after* allocation, so the new transaction can never see its own
// id in its own snapshot (invariant 3).
func (r *registry) begin(isolation IsolationLevel) *Transaction {
	r.nextID++
	id := r.nextID

	snapshot := make(map[uint64]struct{}, len(r.txns))
	for _, t := range r.txns {
		if t.Status == InProgress {
			snapshot[t.ID] = struct{}{}
		}
	}

	tx := newTransaction(id, isolation, snapshot)
	r.txns = append(r.txns, tx)
	return tx
}

// get looks up a transaction by id. ok is false for id 0 and for ids
// that have never been allocated — both are "non-existent" per
// spec.md §4.5.
func (r *registry) get(id uint64) (tx *Transaction, ok bool) {
	if id == 0 || id > uint64(len(r.txns)) {
		return nil, false
	}
	return r.txns[id-1], true
}

// status is total over every id ever allocated; internal callers
// (visibility.go, conflict.go) only ever pass ids drawn from a Version's
// Start/Finish or from the registry's own id range, which invariant 2
// guarantees exist, so an unknown id here indicates a bug in the engine
// rather than bad caller input and panics accordingly.
func (r *registry) status(id uint64) TxStatus {
	tx, ok := r.get(id)
	if !ok {
		panic("mvcc: status of unknown transaction id")
	}
	return tx.Status
}

// statusErr is the total, error-returning counterpart to status, for
// callers that pass in an arbitrary, externally supplied id — namely
// Database.Status — where an unknown id is ordinary bad input, not a bug.
func (r *registry) statusErr(id uint64) (TxStatus, error) {
	tx, ok := r.get(id)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownTransaction, "id %d", id)
	}
	return tx.Status, nil
}

// current is the highest id ever allocated — the "nextTransactionId"
// upper bound the conflict detector scans up to, inclusive.
func (r *registry) current() uint64 {
	return r.nextID
}
