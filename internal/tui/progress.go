package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Tracker reports progress of a long-running step such as a dataset load.
// fn returns a one-line summary shown on success.
type Tracker interface {
	Track(ctx context.Context, message string, fn func() (string, error)) error
}

// NewTracker returns a SpinnerTracker when the terminal is interactive and a
// PlainTracker otherwise.
func NewTracker(w io.Writer) Tracker {
	if IsInteractive() {
		return &SpinnerTracker{out: w}
	}
	return &PlainTracker{out: w}
}

// PlainTracker prints one line before and one line after each step.
type PlainTracker struct {
	out io.Writer
}

// NewPlainTracker creates a PlainTracker writing to w.
func NewPlainTracker(w io.Writer) *PlainTracker {
	return &PlainTracker{out: w}
}

// Track runs fn and prints its outcome.
func (p *PlainTracker) Track(_ context.Context, message string, fn func() (string, error)) error {
	fmt.Fprintf(p.out, "%s %s\n", SymbolArrowRight, message)
	result, err := fn()
	if err != nil {
		fmt.Fprintf(p.out, "%s %s\n", SymbolCross, err)
		return err
	}
	fmt.Fprintf(p.out, "%s %s\n", SymbolCheck, result)
	return nil
}

// SpinnerTracker animates a spinner while the step runs.
type SpinnerTracker struct {
	out io.Writer
}

// Track runs fn in the background while a spinner renders message. The
// spinner is replaced by the outcome once fn returns.
func (s *SpinnerTracker) Track(ctx context.Context, message string, fn func() (string, error)) error {
	program := tea.NewProgram(newSpinnerModel(message),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	done := make(chan stepDoneMsg, 1)
	go func() {
		result, err := fn()
		msg := stepDoneMsg{result: result, err: err}
		done <- msg
		program.Send(msg)
	}()

	// A canceled context stops the program early; fn still owns the
	// outcome, so wait for it either way.
	_, _ = program.Run()
	msg := <-done
	return msg.err
}

type stepDoneMsg struct {
	result string
	err    error
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    *stepDoneMsg
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return spinnerModel{spinner: s, message: message}
}

// Init implements tea.Model.
func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		m.done = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m spinnerModel) View() string {
	if m.done != nil {
		if m.done.err != nil {
			return ErrorStyle.Render(SymbolCross+" "+m.done.err.Error()) + "\n"
		}
		return SuccessStyle.Render(SymbolCheck+" "+m.done.result) + "\n"
	}
	return m.spinner.View() + " " + m.message
}

var (
	_ Tracker   = (*PlainTracker)(nil)
	_ Tracker   = (*SpinnerTracker)(nil)
	_ tea.Model = spinnerModel{}
)
