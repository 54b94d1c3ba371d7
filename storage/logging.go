package storage

import (
	"context"

	"github.com/rs/zerolog"
)

// Logging wraps a Backend, logging every Get and Put outcome via a
// zerolog.Logger. It never changes the wrapped Backend's result — only
// adds log lines — so it is safe to layer over any Backend
// implementation, including in tests that assert on outcomes passing
// through unchanged.
type Logging struct {
	Backend
	Log zerolog.Logger
}

// NewLogging wraps backend with logging using log.
func NewLogging(backend Backend, log zerolog.Logger) *Logging {
	return &Logging{Backend: backend, Log: log}
}

func (l *Logging) Get(ctx context.Context, key string) GetResult {
	res := l.Backend.Get(ctx, key)
	ev := l.Log.Info()
	if res.Outcome == ErrorOutcome {
		ev = l.Log.Error().Err(res.Err)
	}
	ev.Str("key", key).Str("outcome", res.Outcome.String()).Int("bytes", len(res.Blob)).Msg("storage get")
	return res
}

func (l *Logging) FinishPut(ctx context.Context, key string, w Writer) error {
	err := l.Backend.FinishPut(ctx, key, w)
	ev := l.Log.Info()
	if err != nil {
		ev = l.Log.Error().Err(err)
	}
	ev.Str("key", key).Int("bytes", len(w.Bytes())).Msg("storage put")
	return err
}
