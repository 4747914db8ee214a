package harness_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matcha/internal/harness"
)

func TestLoadScenario(t *testing.T) {
	s, err := harness.LoadScenario(filepath.Join("testdata", "scenarios", "collect-basics.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "collect-basics", s.Name)
	assert.Equal(t, `[collect [some keep "a"] <end>]`, s.Rules)
	require.Len(t, s.Cases, 2)
	assert.True(t, s.Cases[0].Want.Matched)
	require.NotNil(t, s.Cases[0].Want.Progress)
	assert.Equal(t, 3, *s.Cases[0].Want.Progress)
	assert.False(t, s.Cases[1].Want.Matched)
}

func TestValidateScenarioYAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ok   bool
	}{
		{
			name: "minimal valid scenario",
			yaml: "name: ok\nrules: '[<end>]'\ncases:\n  - input: \"\"\n    want:\n      matched: true\n",
			ok:   true,
		},
		{
			name: "missing rules",
			yaml: "name: bad\ncases:\n  - input: x\n    want:\n      matched: false\n",
			ok:   false,
		},
		{
			name: "empty cases list",
			yaml: "name: bad\nrules: '[<end>]'\ncases: []\n",
			ok:   false,
		},
		{
			name: "want without matched",
			yaml: "name: bad\nrules: '[<end>]'\ncases:\n  - input: x\n    want:\n      progress: 1\n",
			ok:   false,
		},
		{
			name: "invalid case kind",
			yaml: "name: bad\nrules: '[<end>]'\ncases:\n  - input: x\n    kind: audio\n    want:\n      matched: true\n",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := harness.ValidateScenarioYAML(tt.name+".yaml", []byte(tt.yaml))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRunReportsMismatches(t *testing.T) {
	want := "[]"
	s := &harness.Scenario{
		Name:  "mismatch",
		Rules: `[some "a"]`,
		Cases: []harness.Case{
			{Input: "aaa", Want: harness.Want{Matched: true, Synthesized: &want}},
		},
	}

	result, err := harness.Run(s)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Cases, 1)
	assert.False(t, result.Cases[0].Pass)
	assert.NotEmpty(t, result.Cases[0].Failures)
}

func TestRunRejectsBadRules(t *testing.T) {
	s := &harness.Scenario{
		Name:  "broken",
		Rules: `[unterminated`,
		Cases: []harness.Case{{Input: "", Want: harness.Want{Matched: false}}},
	}
	_, err := harness.Run(s)
	assert.Error(t, err)
}

func TestScenarioGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := harness.LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(s.Name, func(t *testing.T) {
			result, err := harness.RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Passed, "scenario expectations must hold")
		})
	}
}
