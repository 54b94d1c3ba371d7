package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/crosstool-cache/ccwrap/dispatch"
	"github.com/crosstool-cache/ccwrap/procexec"
	"github.com/crosstool-cache/ccwrap/storage"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// wrapCmd implements `ccwrap wrap <cache-key> -- <compiler> <args...>`.
type wrapCmd struct {
	cfg        *config
	dryRun     bool
	storageURL string
}

func (*wrapCmd) Name() string     { return "wrap" }
func (*wrapCmd) Synopsis() string { return "run a compiler invocation through the cache" }
func (*wrapCmd) Usage() string {
	return `wrap <cache-key> -- <compiler> <args...>:
  Look up cache-key in storage; on a miss, run the compiler and cache
  its combined output under cache-key.
`
}

func (c *wrapCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "use an in-process memory store instead of the configured storage backend")
	f.StringVar(&c.storageURL, "storage-url", "", "override CCWRAP_STORAGE_URL for this invocation")
}

func (c *wrapCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.Ctx(ctx)

	args := f.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ccwrap wrap <cache-key> [--] <compiler> <args...>")
		return subcommands.ExitUsageError
	}
	cacheKey := args[0]
	rest := args[1:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "ccwrap wrap: no compiler given")
		return subcommands.ExitUsageError
	}
	compiler, compilerArgs := rest[0], rest[1:]

	storageURL := c.storageURL
	if storageURL == "" {
		storageURL = c.cfg.storageURL
	}

	var backend storage.Backend
	switch {
	case c.dryRun || storageURL == "":
		backend = storage.NewMemory()
	default:
		backend = storage.NewHTTPBlobStore(storageURL, http.DefaultClient, *log)
	}
	backend = storage.NewLogging(backend, *log)

	d := dispatch.NewDispatcher(backend, procexec.OSFactory{}, *log)
	outcome, err := d.Dispatch(ctx, compiler, compilerArgs, cacheKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ccwrap: %v\n", err)
		return subcommands.ExitFailure
	}

	os.Stdout.Write(outcome.Stdout)
	os.Stderr.Write(outcome.Stderr)
	if !outcome.Status.Success() {
		return subcommands.ExitStatus(outcome.Status.Code())
	}
	return subcommands.ExitSuccess
}
