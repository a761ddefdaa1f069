package recommender

import "errors"

var (
	// ErrNotFound reports an artist id absent from the store.
	ErrNotFound = errors.New("recommender: artist not found")
	// ErrInvalidArgument reports an out-of-range k or a malformed point.
	ErrInvalidArgument = errors.New("recommender: invalid argument")
)
