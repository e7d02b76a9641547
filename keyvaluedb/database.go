package keyvaluedb

// Reader interface for DB
type Reader interface {
	// Read reads the value for key stored in the DB. The first return value
	// is false when the key is not present.
	Read(key []byte, value any) (bool, error)
}

// Writer interface for DB
type Writer interface {
	// Write inserts the given value into the DB.
	Write(key []byte, value any) error
	// Delete removes the key from the key-value data store.
	Delete(key []byte) error
}

// KeyValueDB is the persistent store used for node state that must survive
// restarts (ie the ledger clock value).
type KeyValueDB interface {
	Reader
	Writer
	// Close releases the underlying store. Operations after Close fail.
	Close() error
}
