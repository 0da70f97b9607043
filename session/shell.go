package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rickchristie/todoagent/transcript"
)

// LineReader yields one line of user input per call and io.EOF when input ends.
type LineReader interface {
	ReadLine() (string, error)
}

// LineReaderFunc adapts a function to LineReader.
type LineReaderFunc func() (string, error)

// ReadLine calls f.
func (f LineReaderFunc) ReadLine() (string, error) {
	return f()
}

// ScanLines reads lines from r. Used when input is piped rather than typed.
func ScanLines(r io.Reader) LineReader {
	scanner := bufio.NewScanner(r)
	return LineReaderFunc(func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	})
}

// Shell is the line-oriented loop in front of a Session.
type Shell struct {
	Session *Session
	In      LineReader
	Out     io.Writer

	// Transcript, when set, receives user input, replies and the end marker.
	Transcript *transcript.Writer

	// AssistantName labels replies. Defaults to "Assistant".
	AssistantName string
}

// Run reads a line at a time until input ends or the user types exit or quit. Each request
// is handled to completion before the next line is read. Blank lines are ignored.
//
// A failed request ends the shell and its error is returned; reaching the step cap does not.
func (sh *Shell) Run(ctx context.Context) error {
	name := sh.AssistantName
	if name == "" {
		name = "Assistant"
	}

	for {
		line, err := sh.In.ReadLine()
		if errors.Is(err, io.EOF) {
			sh.end()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		request := strings.TrimSpace(line)
		if IsExitCommand(request) {
			sh.end()
			return nil
		}
		if request == "" {
			continue
		}

		if sh.Transcript != nil {
			sh.Transcript.UserInput(request)
		}
		fmt.Fprintf(sh.Out, "\nUser: %s\n", request)

		answer, err := sh.Session.Handle(ctx, request)
		if err != nil {
			fmt.Fprintf(sh.Out, "\nError: %v\n", err)
			return err
		}

		fmt.Fprintf(sh.Out, "\n%s: %s\n", name, answer)
		if sh.Transcript != nil {
			sh.Transcript.Assistant(answer)
		}
	}
}

func (sh *Shell) end() {
	if sh.Transcript != nil {
		sh.Transcript.SessionEnded()
	}
}
