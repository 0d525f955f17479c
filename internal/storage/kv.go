// Package storage provides the key-value persistence collaborator the
// ledger writes through. The ledger is agnostic to the medium; anything
// that can load and durably save a keyed JSON blob will do.
package storage

// KV loads and saves keyed blobs. Save must be durable by the time it
// returns; Load reports absence without error.
type KV interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
}
