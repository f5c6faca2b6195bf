package store

import "errors"

// ErrNotFound is returned by Lookup when no instant is stored for a key.
var ErrNotFound = errors.New("term instant not found")
