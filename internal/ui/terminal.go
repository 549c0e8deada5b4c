package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/KirkDiggler/spix/internal/errors"
)

const (
	// DefaultWidth fits an 80 column terminal inside a border
	DefaultWidth = 76

	title = "~~~  SPIX IV  ~~~"
)

var clearScreen = fmt.Sprintf(termenv.CSI+termenv.CursorPositionSeq, 1, 1) +
	fmt.Sprintf(termenv.CSI+termenv.EraseDisplaySeq, 2)

// Terminal is a line based Transport over a reader and a writer
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	width    int
	renderer *lipgloss.Renderer

	// keys of the menu currently on screen; nil while a prompt is open
	keys     []string
	prompted bool
}

// TerminalOption configures a Terminal
type TerminalOption func(*Terminal)

// WithWidth sets the wrap width
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		if width > 10 {
			t.width = width
		}
	}
}

// WithColor false forces plain text. When true, colour is used only if
// the output supports it.
func WithColor(color bool) TerminalOption {
	return func(t *Terminal) {
		if !color {
			t.renderer.SetColorProfile(termenv.Ascii)
		}
	}
}

// WithProfile overrides the detected colour profile
func WithProfile(profile termenv.Profile) TerminalOption {
	return func(t *Terminal) {
		t.renderer.SetColorProfile(profile)
	}
}

// NewTerminal creates a terminal transport. Colour support is detected
// from out.
func NewTerminal(in io.Reader, out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:       bufio.NewReader(in),
		out:      out,
		width:    DefaultWidth,
		renderer: lipgloss.NewRenderer(out),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) plain() bool {
	return t.renderer.ColorProfile() == termenv.Ascii
}

// render wraps text to width cells using style. Trailing padding is
// dropped from every line.
func (t *Terminal) render(style lipgloss.Style, text string, width int) []string {
	lines := strings.Split(style.Width(width).Render(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// hanging renders head followed by text, indenting continuation lines
// to line up under the first word of text
func (t *Terminal) hanging(head, text string) string {
	margin := lipgloss.Width(head)
	lines := t.render(t.renderer.NewStyle(), collapse(text), max(t.width-margin, 1))
	lines[0] = head + lines[0]
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.Repeat(" ", margin) + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Send renders a frame. A pause frame blocks until a line is entered.
func (t *Terminal) Send(ctx context.Context, frame Frame) error {
	if err := ctx.Err(); err != nil {
		return errors.Canceled(err.Error())
	}

	var out string
	switch frame.Type {
	case FrameBlank:
		t.keys = nil
		if t.plain() {
			out = "\n"
		} else {
			out = clearScreen
		}
		centered := t.render(t.renderer.NewStyle().Align(lipgloss.Center), title, t.width)
		out += strings.Join(centered, "\n") + "\n\n"

	case FrameLine:
		data, ok := frame.Data.(LineData)
		if !ok {
			return errors.InvalidArgumentf("line frame carries %T", frame.Data)
		}
		style := t.renderer.NewStyle()
		if data.Color == StyleSecondary {
			style = style.Faint(true)
		}
		out = strings.Join(t.render(style, collapse(data.Text), t.width), "\n") + "\n"

	case FrameDialogue:
		data, ok := frame.Data.(DialogueData)
		if !ok {
			return errors.InvalidArgumentf("dialogue frame carries %T", frame.Data)
		}
		out = t.hanging(data.Name+": ", data.Text) + "\n"

	case FrameChoices:
		data, ok := frame.Data.(ChoicesData)
		if !ok {
			return errors.InvalidArgumentf("choices frame carries %T", frame.Data)
		}
		t.keys = t.keys[:0]
		var b strings.Builder
		for _, c := range data.Choices {
			b.WriteString(t.hanging(strings.ToUpper(c.Key)+") ", c.Text) + "\n")
			t.keys = append(t.keys, c.Key)
		}
		sort.Strings(t.keys)
		t.prompted = false
		out = b.String()

	case FramePrompt:
		data, ok := frame.Data.(PromptData)
		if !ok {
			return errors.InvalidArgumentf("prompt frame carries %T", frame.Data)
		}
		t.keys = nil
		t.prompted = true
		out = data.Label + ": "

	case FramePause:
		if err := t.write("..."); err != nil {
			return err
		}
		_, err := t.readLine()
		return err

	case FrameQuit:
		out = "\n"

	default:
		return errors.InvalidArgumentf("unknown frame type %q", frame.Type)
	}
	return t.write(out)
}

// Receive reads one line of input
func (t *Terminal) Receive(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Canceled(err.Error())
	}

	var err error
	switch {
	case t.prompted:
		t.prompted = false
	case len(t.keys) > 0:
		err = t.write("\n" + strings.Join(t.keys, ", ") + "> ")
	default:
		err = t.write("> ")
	}
	if err != nil {
		return "", err
	}
	return t.readLine()
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", errors.Disconnected("input closed")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) write(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return errors.WrapWithCode(err, errors.CodeDisconnected, "failed to write to terminal")
	}
	return nil
}

// collapse turns runs of whitespace, newlines included, into single spaces
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

var _ Transport = (*Terminal)(nil)
