package geocode

import "errors"

// ErrNotFound means the query was well-formed but no provider could place
// it. Provider outages and exhausted retries are demoted to this error so
// that callers above the gateway never see transport failures.
var ErrNotFound = errors.New("location not found")
