// Package ui is the presentation contract between scenes and whatever is
// drawing them. Scenes talk to a Window, which turns semantic calls into
// Frames and hands them to a Transport (a terminal, a websocket, a test
// script).
package ui

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_transport.go -package=uimock github.com/KirkDiggler/spix/internal/ui Transport

// Style selects how a line of text is rendered
type Style string

const (
	StylePrimary   Style = "primary"
	StyleSecondary Style = "secondary"
)

// FrameType identifies a frame on the wire
type FrameType string

const (
	FrameBlank    FrameType = "blank"
	FrameLine     FrameType = "line"
	FrameDialogue FrameType = "dialogue"
	FrameChoices  FrameType = "choices"
	FramePrompt   FrameType = "prompt"
	FramePause    FrameType = "pause"
	FrameQuit     FrameType = "quit"
)

// Frame is one unit of output. Data is one of the *Data types below, or an
// empty struct for frames with no payload.
type Frame struct {
	Type FrameType `json:"type"`
	Data any       `json:"data"`
}

// LineData carries a styled line of text
type LineData struct {
	Text  string `json:"text"`
	Color Style  `json:"color,omitempty"`
}

// DialogueData carries a line spoken by a named character
type DialogueData struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Choice is one selectable menu entry
type Choice struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ChoicesData carries the menu being offered
type ChoicesData struct {
	Choices []Choice `json:"choices"`
}

// PromptData carries the label for free text input
type PromptData struct {
	Label string `json:"label"`
}

type empty struct{}

// BlankFrame clears the display
func BlankFrame() Frame { return Frame{Type: FrameBlank, Data: empty{}} }

// LineFrame is a styled line
func LineFrame(text string, style Style) Frame {
	return Frame{Type: FrameLine, Data: LineData{Text: text, Color: style}}
}

// DialogueFrame is a line of speech
func DialogueFrame(name, text string) Frame {
	return Frame{Type: FrameDialogue, Data: DialogueData{Name: name, Text: text}}
}

// ChoicesFrame offers a menu
func ChoicesFrame(choices []Choice) Frame {
	return Frame{Type: FrameChoices, Data: ChoicesData{Choices: choices}}
}

// PromptFrame asks for free text
func PromptFrame(label string) Frame {
	return Frame{Type: FramePrompt, Data: PromptData{Label: label}}
}

// PauseFrame is a dramatic pause
func PauseFrame() Frame { return Frame{Type: FramePause, Data: empty{}} }

// QuitFrame tells the client the session is over
func QuitFrame() Frame { return Frame{Type: FrameQuit, Data: empty{}} }

// Transport delivers frames and reads player input.
//
// Receive blocks until a line of input is available. When the input source
// is gone it returns an error carrying errors.CodeDisconnected. How a pause
// frame is honoured is up to the transport: a terminal waits for a key, a
// websocket client handles it on its own side.
type Transport interface {
	Send(ctx context.Context, frame Frame) error
	Receive(ctx context.Context) (string, error)
}
