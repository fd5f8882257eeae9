package slot

import "errors"

var (
	// ErrExhausted indicates the allocator's configured slot cap has been
	// reached. No bookkeeping was modified; the caller may treat the feature
	// needing the slot as unavailable and retry after freeing an ID.
	ErrExhausted = errors.New("slot: allocator slot cap reached")
)
