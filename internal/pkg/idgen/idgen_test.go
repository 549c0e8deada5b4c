package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestPrefixed() {
	g := idgen.NewPrefixed("session")
	a, b := g.Generate(), g.Generate()
	s.Assert().True(strings.HasPrefix(a, "session_"))
	s.Assert().NotEqual(a, b)
}

func (s *IDGenTestSuite) TestSequential() {
	g := idgen.NewSequential("player")
	s.Assert().Equal("player_1", g.Generate())
	s.Assert().Equal("player_2", g.Generate())
	s.Assert().Equal("1", idgen.NewSequential("").Generate())
}

func (s *IDGenTestSuite) TestUUIDValid() {
	g := idgen.NewUUID("player")
	id := g.Generate()
	s.Assert().True(g.Valid(id))

	testCases := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"missing prefix", strings.TrimPrefix(id, "player_")},
		{"other prefix", "session_" + strings.TrimPrefix(id, "player_")},
		{"traversal", "player_../../etc"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().False(g.Valid(tc.id))
		})
	}

	bare := idgen.NewUUID("")
	s.Assert().True(bare.Valid(bare.Generate()))
}
