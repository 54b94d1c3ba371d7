package argparse

import (
	"testing"

	"github.com/crosstool-cache/ccwrap/ccerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTable builds the descriptor set used throughout spec.md §8's seed
// end-to-end scenarios: flag("-bar"), takeSep("-foo"), flag("-fuga"),
// takeConcat("-hoge"), flag("-plop"), takeCanBeSep('=', "-qux"),
// flag("-zorglub").
func seedTable(t *testing.T) *Table[string] {
	t.Helper()
	return NewTable(
		Flag("-bar", "bar"),
		TakeSeparated("-foo", StringValue),
		Flag("-fuga", "fuga"),
		TakeConcatenated("-hoge", 0, false, StringValue),
		Flag("-plop", "plop"),
		TakeCanBeSeparated("-qux", '=', true, StringValue),
		Flag("-zorglub", "zorglub"),
	)
}

func parseAll(t *testing.T, table *Table[string], tokens []string) []Item[string] {
	t.Helper()
	p := NewParser(table, tokens)
	var items []Item[string]
	for {
		item, ok := p.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items
}

func TestSeed_UnknownFlag(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-nomatch"})
	require.Len(t, items, 1)
	assert.NoError(t, items[0].Err)
	assert.True(t, items[0].Result.IsUnknownFlag())
	assert.Equal(t, "-nomatch", items[0].Result.Token())
}

func TestSeed_SeparatedValue(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-foo", "value"})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	r := items[0].Result
	assert.True(t, r.IsWithValue())
	assert.Equal(t, "-foo", r.Name())
	assert.Equal(t, "value", r.Value())
	assert.Equal(t, Separated, r.Disposition())
}

func TestSeed_ConcatenatedNoneFollowedByRaw(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-hoge", "value"})
	require.Len(t, items, 2)
	assert.Equal(t, "-hoge", items[0].Result.Name())
	assert.Equal(t, "", items[0].Result.Value())
	assert.Equal(t, Concatenated, items[0].Result.Disposition())
	assert.True(t, items[1].Result.IsRaw())
	assert.Equal(t, "value", items[1].Result.Token())
}

func TestSeed_ConcatenatedNoneWithEqualsInValue(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-hoge=value"})
	require.Len(t, items, 1)
	assert.Equal(t, "=value", items[0].Result.Value())
	assert.Equal(t, Concatenated, items[0].Result.Disposition())
}

func TestSeed_ConcatenatedNoneDirect(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-hogevalue"})
	require.Len(t, items, 1)
	assert.Equal(t, "value", items[0].Result.Value())
	assert.Equal(t, Concatenated, items[0].Result.Disposition())
}

func TestSeed_CanBeSeparated_SeparatedForm(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-qux", "value"})
	require.Len(t, items, 1)
	assert.Equal(t, "value", items[0].Result.Value())
	assert.Equal(t, CanBeConcatenated, items[0].Result.Disposition())
}

func TestSeed_CanBeSeparated_WrongDelimiter(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-quxbar"})
	require.Len(t, items, 1)
	assert.True(t, items[0].Result.IsUnknownFlag())
	assert.Equal(t, "-quxbar", items[0].Result.Token())
}

func TestSeed_CanBeSeparated_ConcatenatedForm(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-qux=value"})
	require.Len(t, items, 1)
	assert.Equal(t, "value", items[0].Result.Value())
	assert.Equal(t, CanBeSeparated, items[0].Result.Disposition())
}

func TestBoundary_SeparatedMissingValue(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-foo"})
	require.Len(t, items, 1)
	require.Error(t, items[0].Err)
	assert.True(t, ccerr.Is(items[0].Err, ccerr.UnexpectedEndOfArgs))
}

func TestBoundary_ConcatenatedNoneEmptyValue(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-hoge"})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	assert.Equal(t, "", items[0].Result.Value())
	assert.Equal(t, Concatenated, items[0].Result.Disposition())
}

func TestBoundary_LayeredTable_LongerSpellingWins(t *testing.T) {
	type tag int
	const (
		tagInclude tag = iota
		tagIncludePch
	)
	base := []*Descriptor[tag]{TakeConcatenated("-include", 0, false, func(string) (tag, error) { return tagInclude, nil })}
	ext := []*Descriptor[tag]{TakeConcatenated("-include-pch", 0, false, func(string) (tag, error) { return tagIncludePch, nil })}
	table := NewLayeredTable(base, ext)

	items := parseAll(t, table, []string{"-include-pch"})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	assert.Equal(t, tagIncludePch, items[0].Result.Value())
	assert.Equal(t, "-include-pch", items[0].Result.Name())
}

func TestRoundTrip_EmitMatchesInputWhenUnnormalized(t *testing.T) {
	table := seedTable(t)
	inputs := [][]string{
		{"-bar", "positional", "-foo", "value", "-hoge=thing", "-qux=eq", "-qux", "sep", "-nomatch"},
	}
	for _, tokens := range inputs {
		items := parseAll(t, table, tokens)
		var out []string
		for _, item := range items {
			require.NoError(t, item.Err)
			out = append(out, EmitStrings(item.Result)...)
		}
		assert.Equal(t, tokens, out)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-qux", "value"})
	require.Len(t, items, 1)

	once := Normalize(items[0].Result, PreferConcatenated)
	twice := Normalize(once, PreferConcatenated)
	assert.Equal(t, once, twice)
	assert.Equal(t, Concatenated, once.Disposition())
	assert.Equal(t, []string{"-qux=value"}, EmitStrings(once))
}

func TestNormalize_LeavesPlainDispositionsAlone(t *testing.T) {
	table := seedTable(t)
	items := parseAll(t, table, []string{"-foo", "value"})
	require.Len(t, items, 1)
	normalized := Normalize(items[0].Result, PreferConcatenated)
	assert.Equal(t, items[0].Result, normalized)
}

func TestConverterTransparency(t *testing.T) {
	var seen string
	seenConverter := func(raw string) (string, error) {
		seen = raw
		return raw, nil
	}
	table := NewTable(TakeConcatenated("-hoge", '=', true, seenConverter))
	items := parseAll(t, table, []string{"-hoge=value"})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	assert.Equal(t, "value", seen)
}

func TestTableOrder_NoMatchReturnsNil(t *testing.T) {
	table := seedTable(t)
	assert.Nil(t, table.Search("-absent"))
}

func TestDebugAssertions_PanicsOnUnsortedTable(t *testing.T) {
	prev := EnableDebugAssertions
	EnableDebugAssertions = true
	defer func() { EnableDebugAssertions = prev }()

	unsorted := NewTable(
		Flag("-zzz", "z"),
		Flag("-aaa", "a"),
	)
	assert.Panics(t, func() {
		NewParser(unsorted, []string{"-aaa"})
	})
}
