package mvcc

// Version is one entry in a key's chain. It is immutable except for
// Finish, which is set to the id of each transaction that invalidates the
// version while it can still see it as live — so a later transaction may
// overwrite an earlier Finish, e.g. when the earlier invalidator aborted.
// Mirrors the teacher's versionedValue, but carries the two transaction
// ids the visibility predicate needs instead of just the writer.
type Version struct {
	Value string
	// Start is the id of the transaction that created this version.
	Start uint64
	// Finish is the id of the transaction that deleted or overwrote this
	// version. 0 means the version is currently live.
	Finish uint64
}

func newVersion(start uint64, value string) *Version {
	return &Version{Value: value, Start: start, Finish: 0}
}

// isLive reports whether the version hasn't been invalidated by anyone
// yet, independent of who can see it.
func (v *Version) isLive() bool {
	return v.Finish == 0
}
