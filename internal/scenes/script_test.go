package scenes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/errors"
)

type ScriptTestSuite struct {
	suite.Suite
	script *Script
}

func TestScriptSuite(t *testing.T) {
	suite.Run(t, new(ScriptTestSuite))
}

func (s *ScriptTestSuite) SetupTest() {
	script, err := DefaultScript()
	s.Require().NoError(err)
	s.script = script
}

func (s *ScriptTestSuite) TestDefaultScriptCoversEveryScene() {
	for _, name := range []string{
		Title, Intro, IntroTown, IntroTownCasual, IntroTownCautious, Winnipeg,
		Tavern, Dylan, LevelUp, Cooking, Blacksmith, Barter, CharacterSheet,
		AssiniboineForest, Camp, PriceElectronics, CraigsOffice, Combat, Save, Load, GameOver,
	} {
		s.Assert().NotEmpty(s.script.lines[name], "no lines for %s", name)
	}
}

func (s *ScriptTestSuite) TestTextFillsPlaceholders() {
	s.Assert().Equal("You have encountered 'wild dog'!", s.script.Text(Combat, "encounter", "foe", "wild dog"))
	s.Assert().Equal("Doug's HP:    3 / 12",
		s.script.Text(Combat, "player_hp", "name", "Doug", "hp", "3", "max_hp", "12"))
}

func (s *ScriptTestSuite) TestTextMissingLine() {
	s.Assert().False(s.script.Has(Combat, "dance"))
	s.Assert().Equal("[combat.dance]", s.script.Text(Combat, "dance"))
}

func (s *ScriptTestSuite) TestLoadScriptRejects() {
	testCases := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not a mapping", "- just\n- a list\n"},
		{"blank line", "camp:\n  dusk: \"  \"\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := LoadScript(strings.NewReader(tc.yaml))
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *ScriptTestSuite) TestLoadScript() {
	script, err := LoadScript(strings.NewReader("camp:\n  dusk: Night falls on {place}.\n"))
	s.Require().NoError(err)
	s.Assert().Equal("Night falls on the forest.", script.Text(Camp, "dusk", "place", "the forest"))
}

func (s *ScriptTestSuite) TestListKeys() {
	s.Assert().Equal([]string{"1", "2", "3"}, listKeys(3, "b"))
	s.Assert().Empty(listKeys(0))

	keys := listKeys(12, "a", "S")
	s.Assert().Equal([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "c", "d", "e"}, keys)
	s.Assert().NotContains(listKeys(30, "s"), "s")
}

func (s *ScriptTestSuite) TestCapitalize() {
	s.Assert().Equal("Rabid raccoon", capitalize("rabid raccoon"))
	s.Assert().Equal("Craig", capitalize("Craig"))
	s.Assert().Equal("", capitalize(""))
}
