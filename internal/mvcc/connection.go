package mvcc

import "github.com/pkg/errors"

// Connection binds a database to at most one in-flight transaction,
// mirroring spec.md §4.6's "Connection/dispatcher" component. A
// Connection is not safe for concurrent use by multiple goroutines —
// like database/sql.Tx, and like the teacher's own Tx, it belongs to one
// caller at a time.
type Connection struct {
	db *Database
	tx *Transaction
}

// NewConnection opens a connection to db with no transaction in
// progress.
func NewConnection(db *Database) *Connection {
	return &Connection{db: db}
}

// Begin opens a new transaction on this connection. Fails if one is
// already in progress.
func (c *Connection) Begin() error {
	if c.tx != nil {
		return errors.Wrapf(ErrTransactionActive, "connection already has tx %d in progress", c.tx.ID)
	}
	c.tx = c.db.Begin()
	return nil
}

// Commit finishes the current transaction as Committed and clears it,
// even if the conflict detector aborts it instead — either way the
// connection has no more in-flight transaction afterwards.
func (c *Connection) Commit() error {
	tx, err := c.requireActive()
	if err != nil {
		return err
	}
	c.tx = nil
	return c.db.Finish(tx, Committed)
}

// Abort finishes the current transaction as Aborted and clears it.
func (c *Connection) Abort() error {
	tx, err := c.requireActive()
	if err != nil {
		return err
	}
	c.tx = nil
	return c.db.Finish(tx, Aborted)
}

// Get returns the live value for key under the current transaction's
// isolation level, or ok=false if no version is visible.
func (c *Connection) Get(key string) (value string, ok bool, err error) {
	tx, err := c.requireActive()
	if err != nil {
		return "", false, err
	}
	value, ok = c.db.Get(tx, key)
	return value, ok, nil
}

// Set writes value for key in the current transaction.
func (c *Connection) Set(key, value string) error {
	tx, err := c.requireActive()
	if err != nil {
		return err
	}
	c.db.Set(tx, key, value)
	return nil
}

// Delete removes key in the current transaction, if it currently has a
// live version.
func (c *Connection) Delete(key string) error {
	tx, err := c.requireActive()
	if err != nil {
		return err
	}
	c.db.Delete(tx, key)
	return nil
}

// TransactionID returns the id of the current transaction, or 0 if none
// is in progress.
func (c *Connection) TransactionID() uint64 {
	if c.tx == nil {
		return 0
	}
	return c.tx.ID
}

func (c *Connection) requireActive() (*Transaction, error) {
	if c.tx == nil {
		return nil, ErrNoTransaction
	}
	return c.tx, nil
}
