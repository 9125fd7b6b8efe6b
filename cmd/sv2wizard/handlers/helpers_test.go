package handlers

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/prompt"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// captureOutput captures stdout during the execution of f.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = old
	return <-done
}

// saveAndRestoreFactories saves and restores every handler factory function.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origIsTerminal := isTerminal
	origNewPrompter := newPrompter
	origRunPrompt := runPrompt
	origWriteAnswers := writeAnswers
	origLoadAnswers := loadAnswers
	origNewPublisher := newPublisher
	origEmitBundle := emitBundle
	origRunServer := runServer
	origCheckTools := checkTools
	origProbe := probe

	t.Cleanup(func() {
		isTerminal = origIsTerminal
		newPrompter = origNewPrompter
		runPrompt = origRunPrompt
		writeAnswers = origWriteAnswers
		loadAnswers = origLoadAnswers
		newPublisher = origNewPublisher
		emitBundle = origEmitBundle
		runServer = origRunServer
		checkTools = origCheckTools
		probe = origProbe
	})
}

// scripted answers steps from a fixed list of actions.
type scripted struct {
	answers []prompt.Action
}

func (s *scripted) Ask(context.Context, steps.Step, engine.Data, bool) (prompt.Action, error) {
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scripted) Reject(steps.Step, error) {}

// fakePublisher records published archives.
type fakePublisher struct {
	names []string
	sizes []int
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.sizes = append(f.sizes, len(data))
	return "s3://configs/" + name, nil
}
