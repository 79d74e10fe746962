package report

import "errors"

// ErrUnknownSortKey is returned by ParseSortKey for unsupported names.
var ErrUnknownSortKey = errors.New("unknown sort key: use 'fine-desc' or 'insertion'")
