package dispatch

import "github.com/crosstool-cache/ccwrap/argparse"

// DefaultTable returns the built-in CompilerOpt descriptor table used by
// both the wrap and describe-args subcommands. Entries are listed here
// already in the ascending order argparse.NewTable requires.
func DefaultTable() *argparse.Table[CompilerOpt] {
	return argparse.NewTable(
		argparse.Flag("--version", CompilerOpt{Kind: OptVersion}),
		argparse.TakeConcatenated("-D", 0, false, stringConverter(OptDefine)),
		argparse.TakeCanBeSeparated("-I", 0, false, pathConverter(OptInclude)),
		argparse.Flag("-c", CompilerOpt{Kind: OptCompileOnly}),
		argparse.TakeSeparated("-o", stringConverter(OptOutput)),
		argparse.TakeConcatenated("-std", '=', true, stringConverter(OptStd)),
	)
}
