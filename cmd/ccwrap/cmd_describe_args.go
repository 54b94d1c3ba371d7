package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/crosstool-cache/ccwrap/argparse"
	"github.com/crosstool-cache/ccwrap/dispatch"
	"github.com/google/subcommands"
)

// describeArgsCmd implements `ccwrap describe-args <args...>`: parse args
// against the built-in CompilerOpt table and print one line per Result,
// with no storage or process side effects. A debugging aid for
// integrators wiring up new compiler adapters.
type describeArgsCmd struct{}

func (*describeArgsCmd) Name() string     { return "describe-args" }
func (*describeArgsCmd) Synopsis() string { return "show how argv parses against the built-in option table" }
func (*describeArgsCmd) Usage() string {
	return `describe-args <args...>:
  Parse args against the built-in option table and print one line per
  parsed result.
`
}

func (*describeArgsCmd) SetFlags(*flag.FlagSet) {}

func (*describeArgsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table := dispatch.DefaultTable()
	p := argparse.NewParser(table, f.Args())

	for {
		item, ok := p.Next()
		if !ok {
			break
		}
		if item.Err != nil {
			fmt.Printf("error: %v\n", item.Err)
			continue
		}
		describeResult(item.Result)
	}
	return subcommands.ExitSuccess
}

func describeResult(r argparse.Result[dispatch.CompilerOpt]) {
	switch {
	case r.IsRaw():
		fmt.Printf("raw          %q\n", r.Token())
	case r.IsUnknownFlag():
		fmt.Printf("unknown-flag %q\n", r.Token())
	case r.IsFlag():
		fmt.Printf("flag         %-12s kind=%s\n", r.Name(), r.Value().Kind)
	case r.IsWithValue():
		fmt.Printf("with-value   %-12s kind=%s value=%q disposition=%s\n",
			r.Name(), r.Value().Kind, r.Value().Value, r.Disposition())
	}
}
