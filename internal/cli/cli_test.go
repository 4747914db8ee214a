package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matcha/internal/cli"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		out, err := runCommand(t, "run", "--rules", `[some "a" <end>]`, "--input", "aaa")
		require.NoError(t, err)
		assert.Contains(t, out, "matched:     true")
		assert.Contains(t, out, "progress:    3")
	})

	t.Run("no match exits 1", func(t *testing.T) {
		out, err := runCommand(t, "run", "--rules", `[some "a" <end>]`, "--input", "aab")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNoMatch, cli.GetExitCode(err))
		assert.Contains(t, out, "matched:     false")
	})

	t.Run("json envelope", func(t *testing.T) {
		out, err := runCommand(t, "--format", "json", "run",
			"--rules", `[collect [some keep "a"]]`, "--input", "aa")
		require.NoError(t, err)

		var resp struct {
			Status string        `json:"status"`
			Data   cli.RunReport `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.True(t, resp.Data.Matched)
		assert.Equal(t, `["a" "a"]`, resp.Data.Synthesized)
		assert.Equal(t, 2, resp.Data.Progress)
		assert.NotEmpty(t, resp.Data.SessionID)
	})

	t.Run("malformed rules exit 2", func(t *testing.T) {
		out, err := runCommand(t, "run", "--rules", `[bogus]`, "--input", "x")
		require.Error(t, err)
		assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
		assert.Contains(t, out, "E_USAGE")
	})

	t.Run("unreadable rules file exits 2", func(t *testing.T) {
		_, err := runCommand(t, "run", "--rules", "@/no/such/file", "--input", "x")
		require.Error(t, err)
		assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	})

	t.Run("rules from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.parse")
		require.NoError(t, os.WriteFile(path, []byte(`[thru "b" <end>]`), 0o644))
		_, err := runCommand(t, "run", "--rules", "@"+path, "--input", "aab")
		assert.NoError(t, err)
	})

	t.Run("block input", func(t *testing.T) {
		_, err := runCommand(t, "run", "--kind", "block",
			"--rules", `[some integer! <end>]`, "--input", "1 2 3")
		assert.NoError(t, err)
	})

	t.Run("binary input as hex", func(t *testing.T) {
		_, err := runCommand(t, "run", "--kind", "binary",
			"--rules", `[#{DE} skip <end>]`, "--input", "DEAD")
		assert.NoError(t, err)
	})

	t.Run("bad hex exits 2", func(t *testing.T) {
		_, err := runCommand(t, "run", "--kind", "binary",
			"--rules", `[skip]`, "--input", "zz")
		require.Error(t, err)
		assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	})

	t.Run("case-sensitive flag", func(t *testing.T) {
		_, err := runCommand(t, "run", "--case", "--rules", `["abc" <end>]`, "--input", "ABC")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNoMatch, cli.GetExitCode(err))
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		out, err := runCommand(t, "validate", "--rules", `[some "a" | "b"]`)
		require.NoError(t, err)
		assert.Contains(t, out, "ok:")
	})

	t.Run("usage error exits 1", func(t *testing.T) {
		_, err := runCommand(t, "validate", "--rules", `[some]`)
		require.Error(t, err)
		assert.Equal(t, cli.ExitNoMatch, cli.GetExitCode(err))
	})

	t.Run("unreadable notation exits 2", func(t *testing.T) {
		_, err := runCommand(t, "validate", "--rules", `["unterminated`)
		require.Error(t, err)
		assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	})
}

func TestKeywordsCommand(t *testing.T) {
	t.Run("text listing", func(t *testing.T) {
		out, err := runCommand(t, "keywords")
		require.NoError(t, err)
		assert.Contains(t, out, "collect")
		assert.Contains(t, out, "thru")
	})

	t.Run("json listing", func(t *testing.T) {
		out, err := runCommand(t, "--format", "json", "keywords")
		require.NoError(t, err)

		var resp struct {
			Status string             `json:"status"`
			Data   []cli.KeywordEntry `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.NotEmpty(t, resp.Data)

		names := make(map[string]bool, len(resp.Data))
		for _, e := range resp.Data {
			names[e.Name] = true
		}
		for _, want := range []string{"opt", "some", "to", "collect", "emit", "return"} {
			assert.True(t, names[want], "missing keyword %s", want)
		}
	})
}

func TestTraceCommand(t *testing.T) {
	t.Run("records and lists sessions", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "sessions.db")
		_, err := runCommand(t, "run", "--trace-db", db,
			"--rules", `[some "a"]`, "--input", "aaa")
		require.NoError(t, err)

		out, err := runCommand(t, "trace", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, "matched")
		assert.Contains(t, out, `[some "a"]`)
	})

	t.Run("missing database exits 2", func(t *testing.T) {
		_, err := runCommand(t, "trace", "--db", filepath.Join(t.TempDir(), "absent.db"))
		require.Error(t, err)
		assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	})
}

func TestInvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--format", "yaml", "keywords")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}
