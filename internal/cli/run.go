package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/matcha/internal/dialect"
	"github.com/roach88/matcha/internal/engine"
	"github.com/roach88/matcha/internal/trace"
	"github.com/roach88/matcha/internal/value"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	Rules   string
	Input   string
	Kind    string // "text" | "block" | "binary"
	Case    bool
	TraceDB string
}

// RunReport is the run command's output payload.
type RunReport struct {
	SessionID   string `json:"session_id"`
	Matched     bool   `json:"matched"`
	Value       string `json:"value"`
	Synthesized string `json:"synthesized"`
	Progress    int    `json:"progress"`
	Furthest    int    `json:"furthest"`
}

// NewRunCommand creates the run command: parse input against rules.
func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a rule block against input",
		Long: `Run a rule block against input and report the outcome.

Rules and input may be given inline or as @path to load a file.
Exit code 0 means the input matched, 1 means it did not, 2 means the
rules themselves are malformed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Rules, "rules", "", "rule block in dialect notation, or @file (required)")
	cmd.Flags().StringVar(&opts.Input, "input", "", "input to parse, or @file (required)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "text", "input kind (text|block|binary)")
	cmd.Flags().BoolVar(&opts.Case, "case", false, "case-sensitive matching")
	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "record the session to this SQLite database")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRun(cmd *cobra.Command, root *RootOptions, opts *RunOptions) error {
	out := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout(), Verbose: root.Verbose}

	rules, input, err := loadRulesAndInput(opts.Rules, opts.Input, opts.Kind)
	if err != nil {
		_ = out.Fail("E_LOAD", err.Error())
		return WrapExitError(ExitCommandError, "loading rules/input", err)
	}

	engineOpts := []engine.Option{}
	if opts.Case {
		engineOpts = append(engineOpts, engine.CaseSensitive())
	}
	if root.Verbose && root.Format != "json" {
		engineOpts = append(engineOpts, engine.WithTrace(func(line string) {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}))
	}

	outcome, err := engine.Parse(input, rules, engineOpts...)
	if err != nil {
		_ = out.Fail("E_USAGE", err.Error())
		return WrapExitError(ExitCommandError, "rule error", err)
	}

	report := buildReport(outcome)
	if opts.TraceDB != "" {
		if err := recordSession(cmd.Context(), opts, outcome, report); err != nil {
			return WrapExitError(ExitCommandError, "recording session", err)
		}
	}

	if root.Format == "json" {
		if err := out.JSON(report); err != nil {
			return err
		}
	} else {
		out.Textf("matched:     %v", report.Matched)
		out.Textf("value:       %s", report.Value)
		out.Textf("synthesized: %s", report.Synthesized)
		out.Textf("progress:    %d", report.Progress)
		out.Textf("furthest:    %d", report.Furthest)
	}

	if !outcome.Matched {
		return NewExitError(ExitNoMatch, "input did not match")
	}
	return nil
}

func buildReport(outcome *engine.Outcome) RunReport {
	return RunReport{
		SessionID:   outcome.SessionID,
		Matched:     outcome.Matched,
		Value:       value.Mold(outcome.Value),
		Synthesized: value.Mold(outcome.Synthesized),
		Progress:    outcome.Progress,
		Furthest:    outcome.Furthest,
	}
}

func loadRulesAndInput(rulesArg, inputArg, kind string) (value.Block, value.Value, error) {
	rulesText, err := readArg(rulesArg)
	if err != nil {
		return nil, nil, err
	}
	rules, err := dialect.Read(rulesText)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rules: %w", err)
	}

	inputText, err := readArg(inputArg)
	if err != nil {
		return nil, nil, err
	}
	input, err := parseInput(inputText, kind)
	if err != nil {
		return nil, nil, err
	}
	return rules, input, nil
}

func parseInput(text, kind string) (value.Value, error) {
	switch kind {
	case "text":
		return value.Text(text), nil
	case "block":
		block, err := dialect.Read(text)
		if err != nil {
			return nil, fmt.Errorf("reading block input: %w", err)
		}
		return block, nil
	case "binary":
		data, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("binary input must be hex: %w", err)
		}
		return value.Binary(data), nil
	default:
		return nil, fmt.Errorf("invalid kind %q: must be text, block, or binary", kind)
	}
}

func recordSession(ctx context.Context, opts *RunOptions, outcome *engine.Outcome, report RunReport) error {
	store, err := trace.Open(opts.TraceDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, trace.Session{
		ID:        outcome.SessionID,
		Rules:     opts.Rules,
		Input:     opts.Input,
		InputKind: opts.Kind,
		Matched:   outcome.Matched,
		Result:    report.Value,
		Progress:  outcome.Progress,
		Furthest:  outcome.Furthest,
	})
}
