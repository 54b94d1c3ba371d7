package argparse

import (
	"strings"

	"github.com/crosstool-cache/ccwrap/ccerr"
)

// EnableDebugAssertions toggles the debug-build invariant check described
// in §4.1.b: when true, NewParser panics if either table layer is not
// strictly ascending by flag spelling. This is test-only — nothing in
// cmd/ccwrap sets it, and argparse itself has no notion of debug/release
// builds, so production builds never pay for or benefit from the check.
// Tests that build deliberately unsorted tables to exercise error paths
// should leave this false.
var EnableDebugAssertions = false

// Item is what Parser.Next yields: either a successfully parsed Result,
// or an error (UnexpectedEndOfArgs or InvalidValue) for the token group
// that was being consumed. The parse layer is total: every consumed
// token group produces exactly one Item.
type Item[V any] struct {
	Result Result[V]
	Err    error
}

// Parser is a lazy, single-threaded, pull-driven stream parser: it
// consumes tokens from a caller-supplied slice and emits one Item per
// consumed token group, in input order. It never looks ahead further
// than the single next token needed for a Separated match, never
// blocks, and shares no mutable state with anything but its own cursor.
type Parser[V any] struct {
	table  *Table[V]
	tokens []string
	pos    int
}

// NewParser builds a Parser over table and tokens. If
// EnableDebugAssertions is set, it panics when table is not strictly
// sorted (DebugAssertion, debug builds only).
func NewParser[V any](table *Table[V], tokens []string) *Parser[V] {
	if EnableDebugAssertions {
		table.checkSorted()
	}
	return &Parser[V]{table: table, tokens: tokens}
}

// Next pulls and consumes the next token group, returning false once the
// token slice is exhausted. The caller decides whether to keep pulling
// after an error Item; Next never terminates the sequence on its own.
func (p *Parser[V]) Next() (Item[V], bool) {
	if p.pos >= len(p.tokens) {
		return Item[V]{}, false
	}
	t := p.tokens[p.pos]
	p.pos++

	d := p.table.Search(t)
	if d == nil {
		if len(t) > 0 && t[0] == flagPrefix {
			return Item[V]{Result: UnknownFlagResult[V](t)}, true
		}
		return Item[V]{Result: RawResult[V](t)}, true
	}

	if d.kind == kindFlag {
		return Item[V]{Result: FlagResult(d.name, d.value)}, true
	}

	switch d.disposition {
	case Separated:
		return p.finishSeparated(d, Separated), true
	case Concatenated:
		return p.finishConcatenated(d, t, Concatenated), true
	case CanBeConcatenated, CanBeSeparated:
		return p.resolveCanBe(d, t), true
	default:
		panic("argparse: unreachable disposition")
	}
}

// finishSeparated consumes the next token (if any) as the value for a
// Separated-shaped match, tagging the Result with observed.
func (p *Parser[V]) finishSeparated(d *Descriptor[V], observed Disposition) Item[V] {
	if p.pos >= len(p.tokens) {
		return Item[V]{Err: ccerr.New(ccerr.UnexpectedEndOfArgs, "missing value for "+d.name)}
	}
	next := p.tokens[p.pos]
	p.pos++
	v, err := d.convert(next)
	if err != nil {
		return Item[V]{Err: invalidValue(err)}
	}
	return Item[V]{Result: WithValueResult(d.name, v, observed, d.delim)}
}

// finishConcatenated extracts the value from t itself (stripping the
// flag spelling and, if present, the delimiter byte) for a
// Concatenated-shaped match.
func (p *Parser[V]) finishConcatenated(d *Descriptor[V], t string, observed Disposition) Item[V] {
	rest := t[len(d.name):]
	if d.delim.ok && len(rest) > 0 {
		rest = rest[1:]
	}
	v, err := d.convert(rest)
	if err != nil {
		return Item[V]{Err: invalidValue(err)}
	}
	return Item[V]{Result: WithValueResult(d.name, v, observed, d.delim)}
}

// resolveCanBe implements the promotion rules for CanBeConcatenated and
// CanBeSeparated descriptors, which behave identically during parsing
// (§4.1.d): the observed form — not the declared disposition — decides
// whether the recorded disposition is CanBeConcatenated(d) or
// CanBeSeparated(d).
func (p *Parser[V]) resolveCanBe(d *Descriptor[V], t string) Item[V] {
	if t == d.name {
		item := p.finishSeparated(d, CanBeConcatenated)
		if item.Err != nil && ccerr.Is(item.Err, ccerr.UnexpectedEndOfArgs) && !d.delim.ok {
			// Empty concatenation is acceptable when there is no
			// delimiter; the recorded disposition here is plain
			// Concatenated(None), not promoted.
			v, err := d.convert("")
			if err != nil {
				return Item[V]{Err: invalidValue(err)}
			}
			return Item[V]{Result: WithValueResult(d.name, v, Concatenated, noDelim())}
		}
		return item
	}
	return p.finishConcatenated(d, t, CanBeSeparated)
}

// flagToken reports whether t would be classified a flag token under
// §6 (first byte is '-'). It is package-internal; Parser.Next performs
// the same check inline.
func flagToken(t string) bool {
	return strings.HasPrefix(t, string(flagPrefix))
}
