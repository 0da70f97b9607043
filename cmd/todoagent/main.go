// Command todoagent is an interactive to-do list assistant. Each line typed is a request the
// agent fulfils with add_item, remove_item and list_items; "quit" or "exit" ends the session.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/config"
	"github.com/rickchristie/todoagent/internal/logging"
	"github.com/rickchristie/todoagent/models"
	"github.com/rickchristie/todoagent/session"
	"github.com/rickchristie/todoagent/transcript"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const prompt = "Enter your request (add, remove, list) or 'quit': "

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "todoagent",
		Short: "Manage a to-do list by talking to a ReAct agent",
		Long: `todoagent reads one request per line and lets a language model add, remove
and list to-do items until it produces a final answer.

The react variant parses Thought / Action / Action Input / Final Answer text.
The toolcall variant uses the model's native tool calls.
Every session is written to a transcript under --log-dir.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	defaults := config.Defaults()
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (yaml, toml or json)")
	flags.String("provider", defaults.Provider, "model provider: openai or github")
	flags.String("base-url", "", "OpenAI-compatible API base URL")
	flags.String("model", defaults.Model, "model name")
	flags.String("variant", defaults.Variant, "agent loop: react or toolcall")
	flags.Int("max-steps", defaults.MaxSteps, "model steps allowed per request")
	flags.Float64("temperature", defaults.Temperature, "sampling temperature, negative for the variant default")
	flags.String("log-dir", defaults.LogDir, "directory for session transcripts")
	flags.BoolP("verbose", "v", false, "log model and tool calls to stderr")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model, err := models.New(cfg.ModelOptions())
	if err != nil {
		return err
	}

	sess, err := session.New(model, cfg.SessionSettings())
	if err != nil {
		return err
	}

	clock := todoagent.NewDefaultTimeProvider()
	tw, err := transcript.Open(cfg.LogDir, sess.Variant().TranscriptPrefix(), clock)
	if err != nil {
		return err
	}
	defer tw.Close()

	tw.SessionStarted(transcript.SessionInfo{
		ID:      sess.ID(),
		Variant: string(sess.Variant()),
		Model:   cfg.Model,
	})
	sess.RegisterHook(tw).
		RegisterHook(session.NewProgressHook(stdout)).
		RegisterHook(logging.NewHook(logger))

	logger.Debug("session started",
		zap.String("session", sess.ID()),
		zap.String("variant", string(sess.Variant())),
		zap.String("model", cfg.Model),
		zap.String("transcript", tw.Path()))

	in, closeInput, err := newLineReader(stdin, stdout)
	if err != nil {
		return err
	}
	defer closeInput()

	fmt.Fprintf(stdout, "Logging to: %s\n", tw.Path())

	shell := &session.Shell{
		Session:    sess,
		In:         in,
		Out:        stdout,
		Transcript: tw,
	}
	return shell.Run(ctx)
}

// newLineReader uses readline on a terminal and plain line scanning otherwise. Ctrl-C and
// Ctrl-D both end input.
func newLineReader(stdin io.Reader, stdout io.Writer) (session.LineReader, func(), error) {
	if stdin != os.Stdin || !readline.DefaultIsTerminal() {
		return session.ScanLines(stdin), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdout:          stdout,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create readline: %w", err)
	}

	reader := session.LineReaderFunc(func() (string, error) {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return line, err
	})
	return reader, func() { _ = rl.Close() }, nil
}
