package dispatch

import (
	"strings"

	"github.com/crosstool-cache/ccwrap/argparse"
	"github.com/crosstool-cache/ccwrap/ccerr"
)

// OptKind tags the handful of compiler options this package knows how to
// classify. It is the worked example SPEC_FULL.md §4.1 calls for: one
// concrete V instantiation of argparse.Descriptor[V] showing how a real
// caller declares its variants and converters in one place, the same
// role ArgData's enum variants play in the original compiler/args.rs.
type OptKind int

const (
	OptCompileOnly OptKind = iota
	OptDefine
	OptInclude
	OptOutput
	OptStd
	OptVersion
)

func (k OptKind) String() string {
	switch k {
	case OptCompileOnly:
		return "CompileOnly"
	case OptDefine:
		return "Define"
	case OptInclude:
		return "Include"
	case OptOutput:
		return "Output"
	case OptStd:
		return "Std"
	case OptVersion:
		return "Version"
	default:
		return "Unknown"
	}
}

// CompilerOpt is the value tag produced for every recognized flag in
// DefaultTable: which kind of option it is, and its value (empty for a
// plain Flag).
type CompilerOpt struct {
	Kind  OptKind
	Value string
}

// stringConverter accepts any value, including empty — the default
// "no special handling" choice for the Open Question in SPEC_FULL.md §9.
func stringConverter(kind OptKind) argparse.Converter[CompilerOpt] {
	return func(raw string) (CompilerOpt, error) {
		return CompilerOpt{Kind: kind, Value: raw}, nil
	}
}

// pathConverter is the second documented choice for the same Open
// Question: it rejects an empty value with ccerr.InvalidValue, on the
// grounds that an empty include/search path is never something a caller
// meant to pass. Used for -I, shown alongside stringConverter's more
// permissive default rather than replacing it.
func pathConverter(kind OptKind) argparse.Converter[CompilerOpt] {
	return func(raw string) (CompilerOpt, error) {
		if strings.TrimSpace(raw) == "" {
			return CompilerOpt{}, ccerr.New(ccerr.InvalidValue, "empty path for include option")
		}
		return CompilerOpt{Kind: kind, Value: raw}, nil
	}
}
