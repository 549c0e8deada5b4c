package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/entities"
)

type VitalsTestSuite struct {
	suite.Suite
}

func TestVitalsSuite(t *testing.T) {
	suite.Run(t, new(VitalsTestSuite))
}

func (s *VitalsTestSuite) TestInjure() {
	testCases := []struct {
		name        string
		hp, maxHP   int
		damage      int
		wantHP      int
		wantInjured bool
		wantSlain   bool
	}{
		{"negative damage is ignored", 10, 10, -5, 10, false, false},
		{"zero damage does not injure", 10, 10, 0, 10, false, false},
		{"normal damage", 10, 10, 4, 6, true, false},
		{"overkill clamps at zero", 10, 10, 999, 0, true, true},
		{"exact kill", 3, 10, 3, 0, true, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			v := entities.NewVitals(tc.hp, tc.maxHP)
			v.Injure(tc.damage)
			s.Assert().Equal(tc.wantHP, v.HitPoints())
			s.Assert().Equal(tc.wantInjured, v.WasInjured())
			s.Assert().Equal(tc.wantSlain, v.Slain())
		})
	}
}

func (s *VitalsTestSuite) TestHealClampsAtMax() {
	v := entities.NewVitals(8, 10)
	v.Heal(5)
	s.Assert().Equal(10, v.HitPoints())
}

func (s *VitalsTestSuite) TestOverhealBypassesClamp() {
	v := entities.NewVitals(10, 10)
	v.Overheal(3)
	s.Assert().Equal(13, v.HitPoints())
	s.Assert().True(v.Overhealed())

	v.Heal(1)
	s.Assert().Equal(10, v.HitPoints(), "a regular heal snaps back to max")

	v.Overheal(2)
	v.Restore()
	s.Assert().Equal(10, v.HitPoints())
}

func (s *VitalsTestSuite) TestNewRoundResetsFlags() {
	v := entities.NewVitals(10, 10)
	v.ForfeitEvade()
	v.Injure(2)
	s.Assert().False(v.CanEvade())
	s.Assert().True(v.WasInjured())

	v.NewRound()
	s.Assert().True(v.CanEvade())
	s.Assert().False(v.WasInjured())
}

func (s *VitalsTestSuite) TestNewVitalsClamps() {
	v := entities.NewVitals(20, 10)
	s.Assert().Equal(10, v.HitPoints())

	v = entities.NewVitals(-3, 10)
	s.Assert().Equal(0, v.HitPoints())
}

func (s *VitalsTestSuite) TestRaiseMaxHP() {
	v := entities.NewVitals(10, 10)
	v.RaiseMaxHP(3)
	s.Assert().Equal(13, v.MaxHitPoints())
	s.Assert().Equal(10, v.HitPoints())

	v.RaiseMaxHP(-5)
	s.Assert().Equal(8, v.MaxHitPoints())
	s.Assert().Equal(8, v.HitPoints())
}
