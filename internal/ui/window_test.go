package ui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/testutils"
	"github.com/KirkDiggler/spix/internal/ui"
	uimock "github.com/KirkDiggler/spix/internal/ui/mock"
)

type WindowTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockTransport *uimock.MockTransport
	ctx           context.Context
}

func (s *WindowTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTransport = uimock.NewMockTransport(s.ctrl)
	s.ctx = context.Background()
}

func (s *WindowTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestWindowSuite(t *testing.T) {
	suite.Run(t, new(WindowTestSuite))
}

func (s *WindowTestSuite) TestNewWindowRequiresTransport() {
	w, err := ui.NewWindow(s.ctx, nil)
	s.Require().Error(err)
	s.Assert().Nil(w)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *WindowTestSuite) TestOutputFrames() {
	gomock.InOrder(
		s.mockTransport.EXPECT().Send(s.ctx, ui.BlankFrame()).Return(nil),
		s.mockTransport.EXPECT().Send(s.ctx, ui.LineFrame("You stand on a crumbling highway.", ui.StylePrimary)).Return(nil),
		s.mockTransport.EXPECT().Send(s.ctx, ui.LineFrame("HP fully recovered!", ui.StyleSecondary)).Return(nil),
		s.mockTransport.EXPECT().Send(s.ctx, ui.DialogueFrame("Man", "It does.")).Return(nil),
	)

	w, err := ui.NewWindow(s.ctx, s.mockTransport)
	s.Require().NoError(err)

	w.Clear()
	w.Para("You stand on a crumbling highway.")
	w.Note("HP fully recovered!")
	w.Dialogue("Man", "It does.")
	s.Assert().NoError(w.Err())
}

func (s *WindowTestSuite) TestFirstSendErrorSticks() {
	sendErr := errors.Disconnected("socket gone")
	s.mockTransport.EXPECT().Send(s.ctx, gomock.Any()).Return(sendErr).Times(1)

	w, err := ui.NewWindow(s.ctx, s.mockTransport)
	s.Require().NoError(err)

	w.Para("first")
	w.Para("second")
	w.Dialogue("Man", "third")

	s.Assert().Equal(sendErr, w.Err())

	_, err = w.Prompt(s.ctx, "Name")
	s.Assert().True(errors.IsDisconnected(err))
	s.Assert().True(errors.IsDisconnected(w.Pause(s.ctx)))
}

func (s *WindowTestSuite) TestPromptTrimsInput() {
	gomock.InOrder(
		s.mockTransport.EXPECT().Send(s.ctx, ui.PromptFrame("Name")).Return(nil),
		s.mockTransport.EXPECT().Receive(s.ctx).Return("  Doug \n", nil),
	)

	w, err := ui.NewWindow(s.ctx, s.mockTransport)
	s.Require().NoError(err)

	name, err := w.Prompt(s.ctx, "Name")
	s.Require().NoError(err)
	s.Assert().Equal("Doug", name)
}

func (s *WindowTestSuite) TestChooseRetriesInvalidInput() {
	transport := testutils.NewScriptedTransport("x", " N ")
	w, err := ui.NewWindow(s.ctx, transport)
	s.Require().NoError(err)

	key, err := w.Choose(s.ctx, []ui.Choice{
		{Key: "n", Text: "Start a new game"},
		{Key: "l", Text: "Load a saved game"},
	})
	s.Require().NoError(err)
	s.Assert().Equal("n", key)
	s.Assert().Equal([]string{"invalid selection: x"}, transport.Lines())
	s.Assert().Equal(1, transport.Count(ui.FrameChoices))
}

func (s *WindowTestSuite) TestChooseDisconnected() {
	transport := testutils.NewScriptedTransport("z")
	w, err := ui.NewWindow(s.ctx, transport)
	s.Require().NoError(err)

	_, err = w.Choose(s.ctx, []ui.Choice{{Key: "q", Text: "Quit"}})
	s.Require().Error(err)
	s.Assert().True(errors.IsDisconnected(err))
}

func (s *WindowTestSuite) TestChooseNeedsChoices() {
	w, err := ui.NewWindow(s.ctx, s.mockTransport)
	s.Require().NoError(err)

	_, err = w.Choose(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *WindowTestSuite) TestMoney() {
	s.Assert().Equal("$5", ui.Money(5))
	s.Assert().Equal("$1,250", ui.Money(1250))
}
