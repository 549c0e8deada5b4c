package ui

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/spix/internal/errors"
)

var printer = message.NewPrinter(language.English)

// Money renders a cash amount, e.g. $1,250
func Money(amount int) string {
	return printer.Sprintf("$%d", amount)
}

// Window is what scenes draw into.
//
// Output calls do not return errors. The first failed send is kept and
// every later call becomes a no-op; the kept error is returned by the next
// input call (Prompt, Pause, Choose) or by Err.
type Window struct {
	transport Transport
	ctx       context.Context
	err       error
}

// NewWindow binds a window to a transport. The context is used for the
// output calls, which do not take one of their own.
func NewWindow(ctx context.Context, transport Transport) (*Window, error) {
	if transport == nil {
		return nil, errors.InvalidArgument("transport is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Window{transport: transport, ctx: ctx}, nil
}

// Err returns the first send error, if any
func (w *Window) Err() error {
	return w.err
}

func (w *Window) send(frame Frame) {
	if w.err != nil {
		return
	}
	if err := w.transport.Send(w.ctx, frame); err != nil {
		w.err = err
	}
}

// Clear blanks the display
func (w *Window) Clear() {
	w.send(BlankFrame())
}

// Line writes one line of text in the given style
func (w *Window) Line(text string, style Style) {
	w.send(LineFrame(text, style))
}

// Para writes a paragraph of narration
func (w *Window) Para(text string) {
	w.send(LineFrame(text, StylePrimary))
}

// Note writes a secondary line, used for mechanics rather than story
func (w *Window) Note(text string) {
	w.send(LineFrame(text, StyleSecondary))
}

// Dialogue writes a line spoken by name
func (w *Window) Dialogue(name, text string) {
	w.send(DialogueFrame(name, text))
}

// Recorder returns a callback that writes transcript lines
func (w *Window) Recorder() func(string) {
	return w.Note
}

// Pause is a dramatic pause
func (w *Window) Pause(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}
	if err := w.transport.Send(ctx, PauseFrame()); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Prompt asks for a line of free text
func (w *Window) Prompt(ctx context.Context, label string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	if err := w.transport.Send(ctx, PromptFrame(label)); err != nil {
		w.err = err
		return "", err
	}
	text, err := w.transport.Receive(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Choose offers choices and blocks until one of their keys is entered.
// Anything else is reported back and asked again.
func (w *Window) Choose(ctx context.Context, choices []Choice) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	if len(choices) == 0 {
		return "", errors.InvalidArgument("no choices to choose from")
	}

	valid := make(map[string]bool, len(choices))
	for _, c := range choices {
		valid[c.Key] = true
	}

	if err := w.transport.Send(ctx, ChoicesFrame(choices)); err != nil {
		w.err = err
		return "", err
	}

	for {
		input, err := w.transport.Receive(ctx)
		if err != nil {
			return "", err
		}
		key := strings.ToLower(strings.TrimSpace(input))
		if valid[key] {
			return key, nil
		}

		slog.Debug("Rejected menu input", "input", key)
		w.Line(errors.InvalidChoicef("invalid selection: %s", key).Message, StyleSecondary)
		if w.err != nil {
			return "", w.err
		}
	}
}
