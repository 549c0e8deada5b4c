package ui_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/ui"
)

type TerminalTestSuite struct {
	suite.Suite
	ctx context.Context
	out *bytes.Buffer
}

func (s *TerminalTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.out = &bytes.Buffer{}
}

func TestTerminalSuite(t *testing.T) {
	suite.Run(t, new(TerminalTestSuite))
}

func (s *TerminalTestSuite) terminal(input string, opts ...ui.TerminalOption) *ui.Terminal {
	return ui.NewTerminal(strings.NewReader(input), s.out, opts...)
}

func (s *TerminalTestSuite) TestLinesWrapAtWidth() {
	t := s.terminal("", ui.WithWidth(20))

	s.Require().NoError(t.Send(s.ctx, ui.LineFrame("the quick brown fox jumps over the lazy dog", ui.StylePrimary)))
	s.Assert().Equal("the quick brown fox\njumps over the lazy\ndog\n", s.out.String())
}

func (s *TerminalTestSuite) TestDialogueUsesHangingIndent() {
	t := s.terminal("", ui.WithWidth(20))

	s.Require().NoError(t.Send(s.ctx, ui.DialogueFrame("Man", "pleased to meet you friend")))
	s.Assert().Equal("Man: pleased to meet\n     you friend\n", s.out.String())
}

func (s *TerminalTestSuite) TestChoicesPromptWithSortedKeys() {
	t := s.terminal("n\n")

	s.Require().NoError(t.Send(s.ctx, ui.ChoicesFrame([]ui.Choice{
		{Key: "n", Text: "Start a new game"},
		{Key: "l", Text: "Load a saved game"},
	})))
	input, err := t.Receive(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("n", input)
	s.Assert().Equal("N) Start a new game\nL) Load a saved game\n\nl, n> ", s.out.String())
}

func (s *TerminalTestSuite) TestPromptPrintsLabelOnce() {
	t := s.terminal("Doug\r\n")

	s.Require().NoError(t.Send(s.ctx, ui.PromptFrame("Name")))
	name, err := t.Receive(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("Doug", name)
	s.Assert().Equal("Name: ", s.out.String())
}

func (s *TerminalTestSuite) TestPauseWaitsForInput() {
	t := s.terminal("\nq\n")

	s.Require().NoError(t.Send(s.ctx, ui.PauseFrame()))
	input, err := t.Receive(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("q", input)
}

func (s *TerminalTestSuite) TestEOFDisconnects() {
	t := s.terminal("")

	_, err := t.Receive(s.ctx)
	s.Assert().True(errors.IsDisconnected(err))
	s.Assert().True(errors.IsDisconnected(t.Send(s.ctx, ui.PauseFrame())))
}

func (s *TerminalTestSuite) TestPartialLastLine() {
	t := s.terminal("y")

	input, err := t.Receive(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal("y", input)
}

func (s *TerminalTestSuite) TestWrapCountsCellsNotBytes() {
	t := s.terminal("", ui.WithWidth(20))

	s.Require().NoError(t.Send(s.ctx, ui.LineFrame("Déjà vu café naïve crème brûlée résumé", ui.StylePrimary)))
	s.Assert().Equal("Déjà vu café naïve\ncrème brûlée résumé\n", s.out.String())
}

func (s *TerminalTestSuite) TestPipedOutputStaysPlain() {
	t := s.terminal("", ui.WithColor(true))

	s.Require().NoError(t.Send(s.ctx, ui.BlankFrame()))
	s.Require().NoError(t.Send(s.ctx, ui.LineFrame("Recovered 3 HP!", ui.StyleSecondary)))
	s.Assert().NotContains(s.out.String(), "\x1b")
	s.Assert().True(strings.HasSuffix(s.out.String(), "\nRecovered 3 HP!\n"))
}

func (s *TerminalTestSuite) TestSecondaryDimmedWhenColorSupported() {
	t := s.terminal("", ui.WithProfile(termenv.ANSI))

	s.Require().NoError(t.Send(s.ctx, ui.LineFrame("Recovered 3 HP!", ui.StyleSecondary)))
	s.Assert().Equal("\x1b[2mRecovered 3 HP!\x1b[0m\n", s.out.String())
}

func (s *TerminalTestSuite) TestColorCanBeForcedOff() {
	t := s.terminal("", ui.WithProfile(termenv.ANSI256), ui.WithColor(false))

	s.Require().NoError(t.Send(s.ctx, ui.BlankFrame()))
	s.Require().NoError(t.Send(s.ctx, ui.LineFrame("Recovered 3 HP!", ui.StyleSecondary)))
	s.Assert().NotContains(s.out.String(), "\x1b")
}

func (s *TerminalTestSuite) TestWriteFailureDisconnects() {
	t := ui.NewTerminal(strings.NewReader("x\n"), failingWriter{})

	s.Assert().True(errors.IsDisconnected(t.Send(s.ctx, ui.LineFrame("hello", ui.StylePrimary))))
	_, err := t.Receive(s.ctx)
	s.Assert().True(errors.IsDisconnected(err))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func (s *TerminalTestSuite) TestBlankShowsTitle() {
	t := s.terminal("")

	s.Require().NoError(t.Send(s.ctx, ui.BlankFrame()))
	s.Assert().Contains(s.out.String(), "~~~  SPIX IV  ~~~")
}

func (s *TerminalTestSuite) TestRejectsMismatchedData() {
	t := s.terminal("")

	err := t.Send(s.ctx, ui.Frame{Type: ui.FrameLine, Data: "raw"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *TerminalTestSuite) TestCanceledContext() {
	t := s.terminal("x\n")
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := t.Receive(ctx)
	s.Assert().True(errors.IsCanceled(err))
}
