// Package storage implements the pluggable object-store cache adapter:
// get/put of opaque blobs keyed by a content hash, with a three-level
// fan-out key layout. The wire protocol of any particular object store
// is explicitly out of scope (spec §1 Non-goals) — backends here are
// deliberately thin.
package storage

import (
	"context"
	"strings"

	"github.com/crosstool-cache/ccwrap/ccerr"
)

// Outcome is the tri-state result of a Get: the spec's Hit(blob) | Miss |
// Error(e), kept distinct from Go's usual (value, error) idiom because a
// cache-aware caller needs to distinguish "definitely absent" from
// "we don't know" (§4.2 — network errors degrade to Miss; logic errors
// surface as Error).
type Outcome int

const (
	Miss Outcome = iota
	Hit
	ErrorOutcome
)

func (o Outcome) String() string {
	switch o {
	case Miss:
		return "Miss"
	case Hit:
		return "Hit"
	case ErrorOutcome:
		return "Error"
	default:
		return "Outcome(?)"
	}
}

// GetResult is the return value of Backend.Get.
type GetResult struct {
	Outcome Outcome
	Blob    []byte
	Err     error // non-nil only when Outcome == ErrorOutcome
}

// Writer is the in-memory byte sink handed back by StartPut. It is not
// safe for concurrent use by multiple goroutines.
type Writer interface {
	Write(p []byte) (int, error)
	Bytes() []byte
}

// Backend is the storage boundary contract from spec.md §4.2: get/put of
// opaque blobs keyed by an ASCII key. Implementations are synchronous
// and blocking on the network; callers serialize or parallelize calls as
// they see fit (§5). A Backend holds no mutable state beyond its own
// configuration (connection target, credentials, etc).
type Backend interface {
	// Get fetches the blob stored under key. It never returns a Go
	// error directly for "not found" or "network trouble" — those
	// collapse to Miss per §4.2; Err is populated only for
	// ErrorOutcome (e.g. the stored blob was unreadable).
	Get(ctx context.Context, key string) GetResult
	// StartPut hands back an in-memory sink to write the blob into.
	StartPut(ctx context.Context, key string) (Writer, error)
	// FinishPut flushes w's buffered bytes to the backend under key.
	FinishPut(ctx context.Context, key string, w Writer) error
}

// FanOutPath maps a key to the three-level fan-out directory layout from
// §6: key[0]/key[1]/key[2]/key[3:]. It returns an error if key is
// shorter than 4 ASCII characters, the only validation the adapter
// performs on keys.
func FanOutPath(key string) (string, error) {
	if len(key) < 4 {
		return "", ccerr.New(ccerr.StorageIOError, "storage: key must be at least 4 characters: "+key)
	}
	var b strings.Builder
	b.WriteByte(key[0])
	b.WriteByte('/')
	b.WriteByte(key[1])
	b.WriteByte('/')
	b.WriteByte(key[2])
	b.WriteByte('/')
	b.WriteString(key[3:])
	return b.String(), nil
}
