package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matcha/internal/dialect"
	"github.com/roach88/matcha/internal/engine"
	"github.com/roach88/matcha/internal/value"
)

func mustRules(t *testing.T, src string) value.Block {
	t.Helper()
	blk, err := dialect.Read(src)
	require.NoError(t, err)
	return blk
}

func parseText(t *testing.T, rulesSrc, input string, opts ...engine.Option) *engine.Outcome {
	t.Helper()
	out, err := engine.Parse(value.Text(input), mustRules(t, rulesSrc), opts...)
	require.NoError(t, err)
	return out
}

func requireUsageCode(t *testing.T, err error, code engine.UsageErrorCode) {
	t.Helper()
	var ue *engine.UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, code, ue.Code)
}

func TestCombinatorsOnText(t *testing.T) {
	tests := []struct {
		name     string
		rules    string
		input    string
		matched  bool
		progress int
		synth    string
		value    string
	}{
		{name: "literal match", rules: `["ab" <end>]`, input: "ab", matched: true, progress: 2, synth: `"ab"`, value: `"ab"`},
		{name: "literal with trailing input rejected by end", rules: `["ab" <end>]`, input: "abc", matched: false},
		{name: "prefix match without end anchor", rules: `["ab"]`, input: "abc", matched: true, progress: 2},
		{name: "char literal", rules: `[#"a" <end>]`, input: "a", matched: true, progress: 1, synth: `#"a"`},

		{name: "opt absent", rules: `[opt "x"]`, input: "", matched: true, progress: 0, synth: `null`},
		{name: "opt present", rules: `[opt "x"]`, input: "x", matched: true, progress: 1, synth: `"x"`},
		{name: "opt mid-sequence", rules: `["a" opt "b" "c"]`, input: "ac", matched: true, progress: 2, synth: `"c"`},
		{name: "not succeeds without consuming", rules: `[not "a" skip]`, input: "b", matched: true, progress: 1, synth: `#"b"`},
		{name: "not fails on match", rules: `[not "a"]`, input: "a", matched: false},
		{name: "ahead restores position", rules: `[ahead "ab" "a"]`, input: "ab", matched: true, progress: 1},
		{name: "further passes advancing rule", rules: `[further "a"]`, input: "a", matched: true, progress: 1},
		{name: "further rejects zero-width success", rules: `[further opt "x"]`, input: "y", matched: false},

		{name: "while zero matches", rules: `[while "a"]`, input: "b", matched: true, progress: 0, synth: `null`},
		{name: "while many", rules: `[while "a"]`, input: "aaa", matched: true, progress: 3, synth: `"a"`},
		{name: "while stops on zero-width success", rules: `[while opt "a"]`, input: "ab", matched: true, progress: 1, synth: `null`},
		{name: "some requires one", rules: `[some "a"]`, input: "b", matched: false},
		{name: "some matches greedily", rules: `[some "a"]`, input: "aaab", matched: true, progress: 3, synth: `"a"`},
		{name: "tally counts", rules: `[tally "a"]`, input: "aaab", matched: true, progress: 3, synth: `3`},
		{name: "repeat keyword", rules: `[repeat 2 "ab" <end>]`, input: "abab", matched: true, progress: 4},
		{name: "bare integer repeats", rules: `[2 "ab" <end>]`, input: "abab", matched: true, progress: 4},
		{name: "repeat count unmet", rules: `[3 "ab"]`, input: "abab", matched: false},

		{name: "to stops before match", rules: `[to "b"]`, input: "xxxb", matched: true, progress: 3},
		{name: "thru stops after match", rules: `[thru "b"]`, input: "xxxb", matched: true, progress: 4},
		{name: "to fails when target absent", rules: `[to "z"]`, input: "xxx", matched: false},
		{name: "between captures the span", rules: `[between "(" ")"]`, input: "(abc)", matched: true, progress: 5, synth: `"abc"`},
		{name: "across captures consumed input", rules: `[across some "a"]`, input: "aaab", matched: true, progress: 3, synth: `"aaa"`},
		{name: "seek integer index", rules: `[seek (3) "c" <end>]`, input: "abc", matched: true, progress: 3},

		{name: "collect keeps in order", rules: `[collect [some keep "a"] <end>]`, input: "aaa", matched: true, progress: 3, synth: `["a" "a" "a"]`},
		{name: "collect with no keeps is empty not failed", rules: `[collect []]`, input: "", matched: true, progress: 0, synth: `[]`},
		{name: "collect rolls back across alternatives", rules: `[collect [keep "a" keep "b"] | collect [keep "c"]]`, input: "c", matched: true, progress: 1, synth: `["c"]`},
		{name: "elide hides a value from keep", rules: `[collect [keep elide "a"]]`, input: "a", matched: true, progress: 1, synth: `[]`},
		{name: "gather builds an object", rules: `[gather [emit x "a" emit y "b"]]`, input: "ab", matched: true, progress: 2, synth: `#[object! [x: "a" y: "b"]]`},

		{name: "change replaces in place", rules: `[change "a" ("x")]`, input: "abc", matched: true, progress: 1, value: `"xbc"`},
		{name: "change shrinks the extent", rules: `[change across some "a" ("z")]`, input: "aaab", matched: true, progress: 1, value: `"zb"`},
		{name: "remove deletes the extent", rules: `[remove "a" "b" <end>]`, input: "ab", matched: true, progress: 1, value: `"b"`},
		{name: "insert without consuming", rules: `[insert ("x") "a" <end>]`, input: "a", matched: true, progress: 2, value: `"xa"`},

		{name: "group synthesizes without consuming", rules: `[("hi")]`, input: "", matched: true, progress: 0, synth: `"hi"`},
		{name: "get-group resolves at compile time", rules: `[:("a") <end>]`, input: "a", matched: true, progress: 1},
		{name: "empty get-group is a no-op rule", rules: `[:()]`, input: "", matched: true, progress: 0},

		{name: "segments run in order", rules: `["a" || "b" <end>]`, input: "ab", matched: true, progress: 2},
		{name: "alternatives within a segment", rules: `["a" | "b" || "c" <end>]`, input: "bc", matched: true, progress: 2},
		{name: "second segment failing fails the parse", rules: `["a" || "b"]`, input: "ax", matched: false},
		{name: "comma is pure punctuation", rules: `["a" , "b" <end>]`, input: "ab", matched: true, progress: 2},

		{name: "true is a no-op", rules: `[true "a"]`, input: "a", matched: true, progress: 1},
		{name: "false fails its alternative", rules: `[false | "a"]`, input: "a", matched: true, progress: 1},
		{name: "false alone fails", rules: `[false]`, input: "", matched: false},
		{name: "comment ignores its argument", rules: `[comment "ignored" "a" <end>]`, input: "a", matched: true, progress: 1},

		{name: "into parses a captured sub-series", rules: `[into across some "a" ["a" "a" <end>]]`, input: "aab", matched: true, progress: 2, synth: `"a"`},
		{name: "into requires the sub-series fully matched", rules: `[into across some "a" ["a"]]`, input: "aab", matched: false},

		{name: "return overrides the session value", rules: `["a" return ("done") "b"]`, input: "ab", matched: true, progress: 1, synth: `"done"`, value: `"done"`},

		{name: "end on empty input", rules: `[<end>]`, input: "", matched: true, progress: 0},
		{name: "skip consumes one element", rules: `[skip skip <end>]`, input: "ab", matched: true, progress: 2, synth: `#"b"`},
		{name: "skip fails at the tail", rules: `[skip]`, input: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := parseText(t, tt.rules, tt.input)
			assert.Equal(t, tt.matched, out.Matched, "matched")
			if tt.matched {
				assert.Equal(t, tt.progress, out.Progress, "progress")
			} else {
				assert.Equal(t, "null", value.Mold(out.Value), "no-match value")
			}
			if tt.synth != "" {
				assert.Equal(t, tt.synth, value.Mold(out.Synthesized), "synthesized")
			}
			if tt.value != "" {
				assert.Equal(t, tt.value, value.Mold(out.Value), "value")
			}
		})
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules string
		input string
		code  engine.UsageErrorCode
	}{
		{name: "unknown word", rules: `[bogus]`, input: "x", code: engine.ErrCodeUnknownWord},
		{name: "keyword missing argument", rules: `[some]`, input: "x", code: engine.ErrCodeMissingArg},
		{name: "marker in argument position", rules: `[some ,]`, input: "x", code: engine.ErrCodeBadArg},
		{name: "keep outside collect", rules: `["a" keep "b"]`, input: "ab", code: engine.ErrCodeKeepOutsideCollect},
		{name: "set-word over invisible rule", rules: `[x: elide "a"]`, input: "a", code: engine.ErrCodeInvisibleValue},
		{name: "emit over invisible rule", rules: `[emit x elide "a"]`, input: "a", code: engine.ErrCodeInvisibleValue},
		{name: "emit field must be a word", rules: `[emit 5 "a"]`, input: "a", code: engine.ErrCodeBadArg},
		{name: "repeat count must be an integer", rules: `[repeat "a" "b"]`, input: "ab", code: engine.ErrCodeBadArg},
		{name: "insert value the storage cannot hold", rules: `[insert (5)]`, input: "a", code: engine.ErrCodeMutation},
		{name: "seek index out of range", rules: `[seek (9)]`, input: "abc", code: engine.ErrCodeBadSeek},
		{name: "seek target of the wrong kind", rules: `[seek ("x")]`, input: "abc", code: engine.ErrCodeBadSeek},
		{name: "across over a backwards seek", rules: `["ab" across seek (1)]`, input: "abc", code: engine.ErrCodeBadSeek},
		{name: "unknown tag", rules: `[<bogus>]`, input: "", code: engine.ErrCodeBadElement},
		{name: "default evaluator rejects words", rules: `[( foo )]`, input: "", code: engine.ErrCodeEvaluation},
		{name: "into shape must synthesize a series", rules: `[into (5) [skip]]`, input: "x", code: engine.ErrCodeBadArg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Parse(value.Text(tt.input), mustRules(t, tt.rules))
			require.Error(t, err)
			assert.True(t, engine.IsUsageError(err))
			requireUsageCode(t, err, tt.code)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("well-formed rules", func(t *testing.T) {
		err := engine.Validate(mustRules(t, `[collect [some keep "a"] <end>]`))
		assert.NoError(t, err)
	})

	t.Run("unknown word is a compile error", func(t *testing.T) {
		err := engine.Validate(mustRules(t, `[bogus]`))
		requireUsageCode(t, err, engine.ErrCodeUnknownWord)
	})

	t.Run("dangling keyword argument", func(t *testing.T) {
		err := engine.Validate(mustRules(t, `["a" some]`))
		requireUsageCode(t, err, engine.ErrCodeMissingArg)
	})

	t.Run("get-group failures surface at compile time", func(t *testing.T) {
		err := engine.Validate(mustRules(t, `[:( foo )]`))
		requireUsageCode(t, err, engine.ErrCodeEvaluation)
	})
}
