package storage

import "fmt"

// CorruptError indicates the persisted value under a key could not be parsed.
// Callers recover by substituting an empty collection; the session continues.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("stored data under %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// WriteError indicates a save was rejected by the store. In-memory state
// remains authoritative for the rest of the session; only durability is lost.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %q failed: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
