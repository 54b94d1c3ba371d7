// Package dispatch ties argparse, storage, and procexec together: given
// a raw argv and a precomputed cache key, it decides hit/miss via
// storage, and on miss normalizes/re-emits the parsed argv and runs the
// real compiler via procexec. Hash-key derivation and cache-policy
// remain explicit Non-goals — the key is an input here, never computed.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/crosstool-cache/ccwrap/argparse"
	"github.com/crosstool-cache/ccwrap/ccerr"
	"github.com/crosstool-cache/ccwrap/procexec"
	"github.com/crosstool-cache/ccwrap/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OutcomeKind distinguishes a cache hit (no compiler run) from an
// executed miss.
type OutcomeKind int

const (
	OutcomeHit OutcomeKind = iota
	OutcomeExecuted
)

func (k OutcomeKind) String() string {
	if k == OutcomeHit {
		return "Hit"
	}
	return "Executed"
}

// Outcome is what Dispatch returns: which path was taken, the process's
// recorded output, and its exit status.
type Outcome struct {
	Kind   OutcomeKind
	Status procexec.ExitStatus
	Stdout []byte
	Stderr []byte
}

// cachedResult is the JSON encoding stored under a cache key: there is
// no object-store wire protocol in scope here (spec Non-goal), just a
// small self-contained blob format this package both writes and reads.
type cachedResult struct {
	ExitCode int    `json:"exit_code"`
	Signal   int    `json:"signal"`
	Stdout   []byte `json:"stdout"`
	Stderr   []byte `json:"stderr"`
}

// Dispatcher holds the three collaborators a single invocation needs. A
// Dispatcher is stateless beyond them and safe to call concurrently from
// multiple goroutines — each Dispatch call only touches its own argv and
// cacheKey.
type Dispatcher struct {
	Backend    storage.Backend
	Factory    procexec.Factory
	Table      *argparse.Table[CompilerOpt]
	Preference argparse.NormalizePreference
	Log        zerolog.Logger
}

// NewDispatcher builds a Dispatcher over backend and factory, using
// DefaultTable and preferring separated re-emission.
func NewDispatcher(backend storage.Backend, factory procexec.Factory, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		Backend:    backend,
		Factory:    factory,
		Table:      DefaultTable(),
		Preference: argparse.PreferSeparated,
		Log:        log,
	}
}

// Dispatch runs one compiler invocation: parse argv, consult the cache
// under cacheKey, and on a miss re-emit the normalized argv, run it
// through compiler via Factory, and persist the combined result.
func (d *Dispatcher) Dispatch(ctx context.Context, compiler string, argv []string, cacheKey string) (Outcome, error) {
	invocationID := uuid.New()
	start := time.Now()
	log := d.Log.With().Str("invocation", invocationID.String()).Str("cache_key", cacheKey).Logger()

	results, err := parseAll(d.Table, argv)
	if err != nil {
		log.Error().Err(err).Msg("dispatch: argv did not parse")
		return Outcome{}, err
	}

	get := d.Backend.Get(ctx, cacheKey)
	if get.Outcome == storage.Hit {
		cached, err := decodeCachedResult(get.Blob)
		if err != nil {
			return Outcome{}, ccerr.Wrap(ccerr.StorageIOError, err)
		}
		log.Info().Dur("duration", time.Since(start)).Msg("dispatch: cache hit")
		return Outcome{
			Kind:   OutcomeHit,
			Status: procexec.NewExitStatus(cached.ExitCode, cached.Signal),
			Stdout: cached.Stdout,
			Stderr: cached.Stderr,
		}, nil
	}

	emitArgv := reemit(results, d.Preference)
	child, err := d.Factory.NewCommand(compiler).Args(emitArgv).Spawn(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dispatch: spawn failed")
		return Outcome{}, err
	}
	out, err := child.WaitWithOutput()
	if err != nil {
		log.Error().Err(err).Msg("dispatch: wait failed")
		return Outcome{}, err
	}

	blob, err := encodeCachedResult(out)
	if err != nil {
		return Outcome{}, ccerr.Wrap(ccerr.StorageIOError, err)
	}
	w, err := d.Backend.StartPut(ctx, cacheKey)
	if err != nil {
		return Outcome{}, ccerr.Wrap(ccerr.StorageIOError, err)
	}
	if _, err := w.Write(blob); err != nil {
		return Outcome{}, ccerr.Wrap(ccerr.StorageIOError, err)
	}
	if err := d.Backend.FinishPut(ctx, cacheKey, w); err != nil {
		log.Error().Err(err).Msg("dispatch: cache write failed, returning result anyway")
	}

	log.Info().Dur("duration", time.Since(start)).Bool("success", out.Status.Success()).Msg("dispatch: executed")
	return Outcome{
		Kind:   OutcomeExecuted,
		Status: out.Status,
		Stdout: out.Stdout,
		Stderr: out.Stderr,
	}, nil
}

// parseAll drains a Parser fully, failing on the first error Item — a
// parse error means this invocation can't be made sense of, and
// nothing downstream (hash-key derivation, compiler detection) is this
// package's job to attempt regardless.
func parseAll(table *argparse.Table[CompilerOpt], argv []string) ([]argparse.Result[CompilerOpt], error) {
	p := argparse.NewParser(table, argv)
	var results []argparse.Result[CompilerOpt]
	for {
		item, ok := p.Next()
		if !ok {
			break
		}
		if item.Err != nil {
			return nil, item.Err
		}
		results = append(results, item.Result)
	}
	return results, nil
}

// reemit normalizes every result to preference and flattens them back
// into a fresh argv, in input order.
func reemit(results []argparse.Result[CompilerOpt], preference argparse.NormalizePreference) []string {
	toArg := func(v CompilerOpt) string { return v.Value }
	var argv []string
	for _, r := range results {
		argv = append(argv, argparse.Emit(argparse.Normalize(r, preference), toArg)...)
	}
	return argv
}

func encodeCachedResult(out procexec.Output) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err := enc.Encode(cachedResult{
		ExitCode: out.Status.Code(),
		Signal:   out.Status.Signal(),
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
	})
	return buf.Bytes(), err
}

func decodeCachedResult(blob []byte) (cachedResult, error) {
	var cr cachedResult
	err := json.Unmarshal(blob, &cr)
	return cr, err
}
