package fuzzgo

import (
	"errors"

	"github.com/hupe1980/fuzzgo/itemstore"
)

var (
	// ErrAlreadyStarted is returned by Start when the finder is running.
	ErrAlreadyStarted = errors.New("fuzzgo: already started")

	// ErrStopped is returned by Start after Stop; a Finder cannot be
	// restarted.
	ErrStopped = errors.New("fuzzgo: stopped")

	// ErrItemTooLarge is returned by PushItem and ScanFeed when one item
	// exceeds the configured maximum length.
	ErrItemTooLarge = itemstore.ErrItemTooLarge

	// ErrTooManyItems is returned by PushItem and ScanFeed when the store
	// reaches the maximum 32-bit-indexable item count.
	ErrTooManyItems = itemstore.ErrTooManyItems
)
