package argparse

import (
	"github.com/crosstool-cache/ccwrap/ccerr"
)

// Converter maps the opaque token bytes matched for a value (already
// stripped of the flag spelling and, for a concatenated match, the
// delimiter) into the descriptor's value-tag type V, or fails with an
// ccerr.InvalidValue error.
type Converter[V any] func(raw string) (V, error)

// kind distinguishes a valueless flag from one that takes a value.
type kind int

const (
	kindFlag kind = iota
	kindTakeValue
)

// Descriptor is an immutable description of one recognized flag: its
// fixed spelling, its value converter (if it takes a value), and its
// disposition. Descriptors are built once at init time and never
// mutated; they are safe to share across goroutines and across Tables.
type Descriptor[V any] struct {
	name        string
	kind        kind
	value       V // for kindFlag: the constant tag emitted on a match
	convert     Converter[V]
	disposition Disposition
	delim       delimiter
}

// delimiter is an optional single ASCII byte. ok is false for "no
// delimiter" (Rust's Option<u8> in the spec this mirrors).
type delimiter struct {
	b  byte
	ok bool
}

func noDelim() delimiter { return delimiter{} }

func withDelim(b byte) delimiter { return delimiter{b: b, ok: true} }

// Name returns the descriptor's flag spelling.
func (d *Descriptor[V]) Name() string { return d.name }

// Disposition returns the descriptor's configured disposition.
func (d *Descriptor[V]) Disposition() Disposition { return d.disposition }

// Flag declares a valueless flag descriptor: "-bar" with no value,
// matching produces Result.Value() == value every time.
func Flag[V any](name string, value V) *Descriptor[V] {
	mustValidName(name)
	return &Descriptor[V]{name: name, kind: kindFlag, value: value}
}

// TakeSeparated declares a descriptor whose value is always the next
// token: "-foo" "value".
func TakeSeparated[V any](name string, convert Converter[V]) *Descriptor[V] {
	mustValidName(name)
	return &Descriptor[V]{name: name, kind: kindTakeValue, convert: convert, disposition: Separated}
}

// TakeConcatenated declares a descriptor whose value is appended to the
// same token, optionally behind delim. Pass hasDelim=false for no delimiter
// (e.g. "-hoge" + "value" = "-hogevalue"); hasDelim=true for a delimiter byte
// (e.g. "-hoge" '=' "value" = "-hoge=value").
func TakeConcatenated[V any](name string, delim byte, hasDelim bool, convert Converter[V]) *Descriptor[V] {
	mustValidName(name)
	d := delimiter{}
	if hasDelim {
		d = withDelim(delim)
		mustNotEndWithDelim(name, delim)
	}
	return &Descriptor[V]{name: name, kind: kindTakeValue, convert: convert, disposition: Concatenated, delim: d}
}

// TakeCanBeConcatenated declares a Separated-by-default descriptor that
// also accepts concatenation.
func TakeCanBeConcatenated[V any](name string, delim byte, hasDelim bool, convert Converter[V]) *Descriptor[V] {
	mustValidName(name)
	d := delimiter{}
	if hasDelim {
		d = withDelim(delim)
		mustNotEndWithDelim(name, delim)
	}
	return &Descriptor[V]{name: name, kind: kindTakeValue, convert: convert, disposition: CanBeConcatenated, delim: d}
}

// TakeCanBeSeparated declares a Concatenated-by-default descriptor that
// also accepts separation.
func TakeCanBeSeparated[V any](name string, delim byte, hasDelim bool, convert Converter[V]) *Descriptor[V] {
	mustValidName(name)
	d := delimiter{}
	if hasDelim {
		d = withDelim(delim)
		mustNotEndWithDelim(name, delim)
	}
	return &Descriptor[V]{name: name, kind: kindTakeValue, convert: convert, disposition: CanBeSeparated, delim: d}
}

func mustValidName(name string) {
	if name == "" || name[0] != flagPrefix {
		panic("argparse: descriptor flag spelling must be non-empty and begin with '" + string(flagPrefix) + "'")
	}
}

func mustNotEndWithDelim(name string, delim byte) {
	if name[len(name)-1] == delim {
		panic("argparse: descriptor flag spelling must not end with its own delimiter")
	}
}

// flagPrefix is the single byte, per spec §6, that classifies a token as
// a flag token.
const flagPrefix = '-'

// invalidValue wraps a converter failure as ccerr.InvalidValue.
func invalidValue(err error) error {
	return ccerr.Wrap(ccerr.InvalidValue, err)
}

// StringValue is the trivial Converter for V=string: the identity
// function. It is the default "no special handling" converter and
// accepts the empty string (see SPEC_FULL.md's Open Question
// resolution).
func StringValue(raw string) (string, error) {
	return raw, nil
}
