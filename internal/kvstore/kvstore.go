// Package kvstore provides durable single-key JSON slots with a
// deliberate fail-open contract: a missing or corrupt slot is treated
// as "no prior state", never as a fatal error. Shopper collections
// (cart, wishlist, compare) are persisted through it.
package kvstore

// Store reads and writes one JSON-serializable value per key.
type Store interface {
	// Load deserializes the value stored under key into out. It
	// returns false when the key is absent or the stored data cannot
	// be parsed; out is left untouched in that case so the caller's
	// default stands.
	Load(key string, out interface{}) bool

	// Save serializes v and writes it under key. A returned error is
	// advisory: callers are expected to log it and keep their
	// in-memory state authoritative for the session.
	Save(key string, v interface{}) error

	// Delete removes the slot. Deleting an absent key is a no-op.
	Delete(key string) error
}
