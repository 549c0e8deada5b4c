package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/combat"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/testutils"
)

type ResolverTestSuite struct {
	suite.Suite
	roller   *testutils.ScriptedRoller
	resolver *combat.Resolver
	lines    []string
	rec      combat.Recorder
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.roller = testutils.NewScriptedRoller()
	resolver, err := combat.NewResolver(&combat.Config{Roller: s.roller})
	s.Require().NoError(err)
	s.resolver = resolver
	s.lines = nil
	s.rec = func(line string) { s.lines = append(s.lines, line) }
}

func (s *ResolverTestSuite) foe(skills entities.Skills, hp int) *entities.Foe {
	return entities.NewFoe(&entities.FoeRecord{
		ID:           "raider",
		Name:         "raider",
		HP:           hp,
		Skills:       skills,
		Weapon:       "machete",
		WeaponDamage: dice.D(6),
	})
}

func (s *ResolverTestSuite) TestNewResolverRequiresRoller() {
	_, err := combat.NewResolver(&combat.Config{})
	s.Assert().Error(err)

	_, err = combat.NewResolver(nil)
	s.Assert().Error(err)
}

func (s *ResolverTestSuite) TestSkillCheckBoundary() {
	actor := s.foe(entities.Skills{Martial: 12}, 10)

	testCases := []struct {
		name    string
		dice    []int
		success bool
	}{
		{"total equal to rating succeeds", []int{4, 4, 4}, true},
		{"total one over fails", []int{4, 4, 5}, false},
		{"minimum roll succeeds", []int{1, 1, 1}, true},
		{"maximum roll fails", []int{6, 6, 6}, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.Push(tc.dice...)
			result, err := s.resolver.SkillCheck(combat.Nop, actor, entities.SkillMartial, 0)
			s.Require().NoError(err)
			s.Assert().Equal(tc.success, result.Success)
			s.Assert().Equal(12, result.Target)
			s.Assert().Equal(entities.SkillMartial, result.Skill)
		})
	}
}

func (s *ResolverTestSuite) TestSkillCheckModifierAppliesAtComparison() {
	actor := s.foe(entities.Skills{Martial: 10}, 10)
	s.roller.Push(4, 4, 4)

	result, err := s.resolver.SkillCheck(s.rec, actor, entities.SkillMartial, 2)
	s.Require().NoError(err)
	s.Assert().True(result.Success)
	s.Assert().Equal(12, result.Roll.Total(), "modifier is not baked into the dice")
	s.Assert().Equal(0, result.Margin())
	s.Assert().Equal([]string{"Raider rolling martial against 10 + 2: 12 (3d6 = 4+4+4)"}, s.lines)
}

func (s *ResolverTestSuite) TestSkillCheckDefaults() {
	actor := s.foe(entities.Skills{Martial: 9}, 10)

	s.Run("fancy falls back to martial -3", func() {
		s.lines = nil
		s.roller.Push(2, 2, 2)
		result, err := s.resolver.SkillCheck(s.rec, actor, entities.SkillFancy, 0)
		s.Require().NoError(err)
		s.Assert().Equal(6, result.Target)
		s.Assert().Equal(entities.SkillMartial, result.Skill)
		s.Assert().True(result.Success)
		s.Assert().Equal("Raider untrained in fancy, defaults to martial -3", s.lines[0])
	})

	s.Run("unarmed falls back to martial -2", func() {
		s.roller.Push(3, 3, 2)
		result, err := s.resolver.SkillCheck(combat.Nop, actor, entities.SkillUnarmed, 0)
		s.Require().NoError(err)
		s.Assert().Equal(7, result.Target)
		s.Assert().False(result.Success)
	})

	s.Run("no default uses the fixed baseline", func() {
		s.lines = nil
		s.roller.Push(1, 2, 3)
		result, err := s.resolver.SkillCheck(s.rec, actor, entities.SkillTech, 0)
		s.Require().NoError(err)
		s.Assert().Equal(entities.UntrainedTarget, result.Target)
		s.Assert().Equal(entities.SkillTech, result.Skill)
		s.Assert().True(result.Success)
		s.Assert().Equal("Raider tech untrained and has no default, target 7", s.lines[0])
	})
}

func (s *ResolverTestSuite) TestContest() {
	a := s.foe(entities.Skills{Evasion: 10}, 10)
	b := s.foe(entities.Skills{Evasion: 10}, 10)

	s.Run("attacker failing loses without rolling for the defender", func() {
		s.roller.Push(6, 6, 6)
		result, err := s.resolver.Contest(combat.Nop, a, b, entities.SkillEvasion, 0)
		s.Require().NoError(err)
		s.Assert().False(result.Won)
		s.Assert().Nil(result.Defender)
		s.Assert().Equal(0, s.roller.Remaining())
	})

	s.Run("defender failing loses", func() {
		s.roller.Push(3, 3, 3, 6, 6, 6)
		result, err := s.resolver.Contest(combat.Nop, a, b, entities.SkillEvasion, 0)
		s.Require().NoError(err)
		s.Assert().True(result.Won)
	})

	s.Run("larger margin wins", func() {
		s.roller.Push(2, 2, 3, 3, 3, 2)
		result, err := s.resolver.Contest(combat.Nop, a, b, entities.SkillEvasion, 0)
		s.Require().NoError(err)
		s.Assert().True(result.Won)
		s.Assert().Equal(3, result.Attacker.Margin())
		s.Assert().Equal(2, result.Defender.Margin())
	})

	s.Run("exact tie goes to the defender", func() {
		s.lines = nil
		s.roller.Push(3, 3, 2, 2, 3, 3)
		result, err := s.resolver.Contest(s.rec, a, b, entities.SkillEvasion, 0)
		s.Require().NoError(err)
		s.Assert().False(result.Won)
		s.Assert().Equal(result.Attacker.Margin(), result.Defender.Margin())
		s.Assert().Contains(s.lines, "Contest won by raider")
	})

	s.Run("modifier counts toward the margin", func() {
		s.roller.Push(3, 3, 2, 2, 3, 3)
		result, err := s.resolver.Contest(combat.Nop, a, b, entities.SkillEvasion, 3)
		s.Require().NoError(err)
		s.Assert().True(result.Won)
	})
}

func (s *ResolverTestSuite) TestStrike() {
	s.Run("miss returns the failed attack roll", func() {
		att := s.foe(entities.Skills{Martial: 8}, 10)
		def := s.foe(entities.Skills{Evasion: 8}, 10)
		s.roller.Push(5, 5, 5)

		result, err := s.resolver.Strike(combat.Nop, att, def, 0)
		s.Require().NoError(err)
		s.Assert().Equal(combat.OutcomeMiss, result.Outcome)
		s.Assert().Equal(15, result.Roll.Total())
		s.Assert().Equal(10, def.HitPoints())
	})

	s.Run("evade", func() {
		att := s.foe(entities.Skills{Martial: 10}, 10)
		def := s.foe(entities.Skills{Evasion: 10}, 10)
		s.roller.Push(2, 2, 2, 3, 3, 3)

		result, err := s.resolver.Strike(combat.Nop, att, def, 0)
		s.Require().NoError(err)
		s.Assert().Equal(combat.OutcomeEvade, result.Outcome)
		s.Assert().Equal(10, def.HitPoints())
	})

	s.Run("forfeited evade skips the evasion check", func() {
		att := s.foe(entities.Skills{Martial: 10}, 10)
		def := s.foe(entities.Skills{Evasion: 18}, 10)
		def.ForfeitEvade()
		s.roller.Push(2, 2, 2, 4)

		result, err := s.resolver.Strike(combat.Nop, att, def, 1)
		s.Require().NoError(err)
		s.Assert().Equal(combat.OutcomeHit, result.Outcome)
		s.Assert().Equal(5, result.Damage())
		s.Assert().Equal(5, def.HitPoints())
		s.Assert().True(def.WasInjured())
	})

	s.Run("damage reduction can zero the hit", func() {
		att := s.foe(entities.Skills{Martial: 10}, 10)
		def := entities.NewFoe(&entities.FoeRecord{
			ID: "sentry_bot", Name: "sentry bot", HP: 10, DR: 3,
			Skills: entities.Skills{Evasion: 3}, WeaponDamage: dice.D(4),
		})
		s.lines = nil
		s.roller.Push(2, 2, 2, 6, 6, 6, 1)

		result, err := s.resolver.Strike(s.rec, att, def, 0)
		s.Require().NoError(err)
		s.Assert().Equal(combat.OutcomeHit, result.Outcome)
		s.Assert().Equal(-2, result.Roll.Total())
		s.Assert().Equal(0, result.Damage())
		s.Assert().Equal(10, def.HitPoints())
		s.Assert().False(def.WasInjured())
		s.Assert().Contains(s.lines, "Sentry bot applies damage reduction of 3")
	})
}
