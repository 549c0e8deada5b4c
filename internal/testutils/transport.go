package testutils

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/ui"
)

// ScriptedTransport records every frame sent and answers Receive from a
// fixed list of inputs. When the inputs run out it reports a disconnect,
// which is how tests end a game loop.
type ScriptedTransport struct {
	mu     sync.Mutex
	inputs []string
	frames []ui.Frame
}

// NewScriptedTransport creates a transport that will answer with inputs
func NewScriptedTransport(inputs ...string) *ScriptedTransport {
	return &ScriptedTransport{inputs: inputs}
}

// Send records the frame
func (t *ScriptedTransport) Send(_ context.Context, frame ui.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames = append(t.frames, frame)
	return nil
}

// Receive returns the next scripted input
func (t *ScriptedTransport) Receive(_ context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.inputs) == 0 {
		return "", errors.Disconnected("script exhausted")
	}
	next := t.inputs[0]
	t.inputs = t.inputs[1:]
	return next, nil
}

// Push appends more inputs
func (t *ScriptedTransport) Push(inputs ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputs = append(t.inputs, inputs...)
}

// Pending is the number of unused inputs
func (t *ScriptedTransport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inputs)
}

// Frames returns a copy of everything sent so far
func (t *ScriptedTransport) Frames() []ui.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ui.Frame(nil), t.frames...)
}

// Count returns how many frames of type were sent
func (t *ScriptedTransport) Count(frameType ui.FrameType) int {
	n := 0
	for _, f := range t.Frames() {
		if f.Type == frameType {
			n++
		}
	}
	return n
}

// Lines renders line and dialogue frames as plain text, in order
func (t *ScriptedTransport) Lines() []string {
	var lines []string
	for _, f := range t.Frames() {
		switch data := f.Data.(type) {
		case ui.LineData:
			lines = append(lines, data.Text)
		case ui.DialogueData:
			lines = append(lines, data.Name+": "+data.Text)
		}
	}
	return lines
}

// Transcript joins Lines with newlines
func (t *ScriptedTransport) Transcript() string {
	return strings.Join(t.Lines(), "\n")
}

// LastChoices returns the keys of the most recent menu
func (t *ScriptedTransport) LastChoices() []string {
	frames := t.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		if data, ok := frames[i].Data.(ui.ChoicesData); ok {
			keys := make([]string, 0, len(data.Choices))
			for _, c := range data.Choices {
				keys = append(keys, c.Key)
			}
			return keys
		}
	}
	return nil
}

// ChoiceTexts returns the text of every menu entry offered so far, in order
func (t *ScriptedTransport) ChoiceTexts() []string {
	var texts []string
	for _, f := range t.Frames() {
		if data, ok := f.Data.(ui.ChoicesData); ok {
			for _, c := range data.Choices {
				texts = append(texts, c.Text)
			}
		}
	}
	return texts
}

var _ ui.Transport = (*ScriptedTransport)(nil)
