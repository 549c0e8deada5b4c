package dice_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spix/internal/dice"
	dicemock "github.com/KirkDiggler/spix/internal/dice/mock"
	"github.com/KirkDiggler/spix/internal/errors"
)

type DiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *dicemock.MockRoller
}

func TestDiceSuite(t *testing.T) {
	suite.Run(t, new(DiceTestSuite))
}

func (s *DiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = dicemock.NewMockRoller(s.ctrl)
}

func (s *DiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DiceTestSuite) TestNew() {
	testCases := []struct {
		name    string
		faces   int
		count   int
		wantErr bool
	}{
		{"single d6", 6, 1, false},
		{"three d6", 6, 3, false},
		{"zero faces", 0, 1, true},
		{"zero count", 6, 0, true},
		{"negative faces", -4, 2, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			d, err := dice.New(tc.faces, tc.count)
			if tc.wantErr {
				s.Require().Error(err)
				s.Assert().True(errors.IsInvalidSpec(err))
				return
			}
			s.Require().NoError(err)
			s.Assert().Equal(tc.faces, d.Faces())
			s.Assert().Equal(tc.count, d.Count())
		})
	}
}

func (s *DiceTestSuite) TestParse() {
	testCases := []struct {
		notation  string
		wantFaces int
		wantCount int
		wantErr   bool
	}{
		{"d4", 4, 1, false},
		{"3d6", 6, 3, false},
		{"2D10", 10, 2, false},
		{"6", 6, 1, false},
		{" 1d20 ", 20, 1, false},
		{"0d6", 0, 0, true},
		{"d0", 0, 0, true},
		{"", 0, 0, true},
		{"dragon", 0, 0, true},
		{"3d6+1", 0, 0, true},
	}

	for _, tc := range testCases {
		s.Run(tc.notation, func() {
			d, err := dice.Parse(tc.notation)
			if tc.wantErr {
				s.Require().Error(err)
				s.Assert().True(errors.IsInvalidSpec(err))
				return
			}
			s.Require().NoError(err)
			s.Assert().Equal(tc.wantFaces, d.Faces())
			s.Assert().Equal(tc.wantCount, d.Count())
		})
	}
}

func (s *DiceTestSuite) TestString() {
	s.Assert().Equal("d6", dice.D(6).String())
	s.Assert().Equal("3d6", dice.MustParse("3d6").String())
	s.Assert().Equal(3, dice.MustParse("3d6").Min())
	s.Assert().Equal(18, dice.MustParse("3d6").Max())
}

func (s *DiceTestSuite) TestRoll() {
	s.Run("sums results and modifier", func() {
		s.mockRoller.EXPECT().RollN(3, 6).Return([]int{4, 2, 6}, nil)

		roll, err := dice.MustParse("3d6").Roll(s.mockRoller, 0)
		s.Require().NoError(err)
		s.Assert().Equal(12, roll.Total())
		s.Assert().Equal([]int{4, 2, 6}, roll.Results())
		s.Assert().Equal("3d6 = 4+2+6", roll.String())
		s.Assert().True(roll.Detailed())
	})

	s.Run("positive modifier", func() {
		s.mockRoller.EXPECT().RollN(1, 4).Return([]int{3}, nil)

		roll, err := dice.D(4).Roll(s.mockRoller, 1)
		s.Require().NoError(err)
		s.Assert().Equal(4, roll.Total())
		s.Assert().Equal("d4+1 = 3+1", roll.String())
	})

	s.Run("negative modifier can go below zero", func() {
		s.mockRoller.EXPECT().RollN(1, 4).Return([]int{1}, nil)

		roll, err := dice.D(4).Roll(s.mockRoller, -3)
		s.Require().NoError(err)
		s.Assert().Equal(-2, roll.Total())
		s.Assert().Equal("d4-3 = 1-3", roll.String())
	})

	s.Run("single die without modifier is not detailed", func() {
		s.mockRoller.EXPECT().RollN(1, 8).Return([]int{5}, nil)

		roll, err := dice.D(8).Roll(s.mockRoller, 0)
		s.Require().NoError(err)
		s.Assert().False(roll.Detailed())
	})

	s.Run("roller error is wrapped", func() {
		s.mockRoller.EXPECT().RollN(1, 8).Return(nil, errors.Internal("broken"))

		_, err := dice.D(8).Roll(s.mockRoller, 0)
		s.Require().Error(err)
		s.Assert().Contains(err.Error(), "failed to roll d8")
	})

	s.Run("zero value cannot roll", func() {
		_, err := dice.Dice{}.Roll(s.mockRoller, 0)
		s.Assert().True(errors.IsInvalidSpec(err))
	})
}

func (s *DiceTestSuite) TestSeededRollerIsDeterministic() {
	a := dice.NewSeeded(42)
	b := dice.NewSeeded(42)

	for i := 0; i < 50; i++ {
		ra, err := dice.MustParse("3d6").Roll(a, 0)
		s.Require().NoError(err)
		rb, err := dice.MustParse("3d6").Roll(b, 0)
		s.Require().NoError(err)

		s.Assert().Equal(ra.Results(), rb.Results())
		s.Assert().GreaterOrEqual(ra.Total(), 3)
		s.Assert().LessOrEqual(ra.Total(), 18)
	}
}

func (s *DiceTestSuite) TestSeededRollerRejectsBadInput() {
	r := dice.NewSeeded(1)

	_, err := r.Roll(0)
	s.Assert().True(errors.IsInvalidSpec(err))

	_, err = r.RollN(0, 6)
	s.Assert().True(errors.IsInvalidSpec(err))
}

func (s *DiceTestSuite) TestChance() {
	s.Run("certain and impossible skip the roller", func() {
		ok, err := dice.Chance(s.mockRoller, 1)
		s.Require().NoError(err)
		s.Assert().True(ok)

		ok, err = dice.Chance(s.mockRoller, 0)
		s.Require().NoError(err)
		s.Assert().False(ok)
	})

	s.Run("rolls at or under the threshold succeed", func() {
		s.mockRoller.EXPECT().Roll(100).Return(25, nil)
		ok, err := dice.Chance(s.mockRoller, 0.25)
		s.Require().NoError(err)
		s.Assert().True(ok)

		s.mockRoller.EXPECT().Roll(100).Return(26, nil)
		ok, err = dice.Chance(s.mockRoller, 0.25)
		s.Require().NoError(err)
		s.Assert().False(ok)
	})
}

func (s *DiceTestSuite) TestPick() {
	s.mockRoller.EXPECT().Roll(3).Return(3, nil)

	idx, err := dice.Pick(s.mockRoller, 3)
	s.Require().NoError(err)
	s.Assert().Equal(2, idx)

	_, err = dice.Pick(s.mockRoller, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *DiceTestSuite) TestTextRoundTrip() {
	var d dice.Dice
	s.Require().NoError(d.UnmarshalText([]byte("2d8")))
	s.Assert().Equal("2d8", d.String())

	text, err := d.MarshalText()
	s.Require().NoError(err)
	s.Assert().Equal("2d8", string(text))

	s.Assert().Error(d.UnmarshalText([]byte("nope")))
}
