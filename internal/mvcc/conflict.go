package mvcc

import "github.com/pkg/errors"

// checkConflict runs the commit-time conflict detector for Snapshot and
// Serializable transactions. It considers every other committed
// transaction that could have run concurrently with t1 — the union of
// t1's own inProgress snapshot and every id allocated after t1 — and
// returns a conflict error for the first overlap it finds; the caller
// then aborts t1. For RepeatableRead and weaker levels it returns nil.
func checkConflict(reg *registry, t1 *Transaction) error {
	switch t1.Isolation {
	case SnapshotIsolation:
		return checkWriteWrite(reg, t1)
	case Serializable:
		return checkReadWrite(reg, t1)
	default:
		return nil
	}
}

func concurrentCommitted(reg *registry, t1 *Transaction, visit func(t2 *Transaction)) {
	seen := make(map[uint64]struct{}, len(t1.inProgress))

	for id := range t1.inProgress {
		seen[id] = struct{}{}
		if t2, ok := reg.get(id); ok && t2.Status == Committed {
			visit(t2)
		}
	}
	for id := t1.ID + 1; id <= reg.current(); id++ {
		if _, already := seen[id]; already {
			continue
		}
		if t2, ok := reg.get(id); ok && t2.Status == Committed {
			visit(t2)
		}
	}
}

func checkWriteWrite(reg *registry, t1 *Transaction) error {
	var conflict error
	concurrentCommitted(reg, t1, func(t2 *Transaction) {
		if conflict != nil {
			return
		}
		if intersects(t1.WriteSet(), t2.WriteSet()) {
			conflict = errors.Wrapf(ErrWriteWriteConflict, "tx %d vs committed tx %d", t1.ID, t2.ID)
		}
	})
	return conflict
}

func checkReadWrite(reg *registry, t1 *Transaction) error {
	var conflict error
	concurrentCommitted(reg, t1, func(t2 *Transaction) {
		if conflict != nil {
			return
		}
		if intersects(t1.ReadSet(), t2.WriteSet()) || intersects(t1.WriteSet(), t2.ReadSet()) {
			conflict = errors.Wrapf(ErrReadWriteConflict, "tx %d vs committed tx %d", t1.ID, t2.ID)
		}
	})
	return conflict
}

func intersects(a, b map[string]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}
