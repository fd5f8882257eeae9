package attach

import "errors"

var (
	// ErrStoreClosed indicates an attach on a Store whose owner has already
	// been torn down.
	ErrStoreClosed = errors.New("attach: store closed")

	// ErrKeyReleased indicates use of a Key whose slot ID has been returned
	// to the registry.
	ErrKeyReleased = errors.New("attach: key released")
)
