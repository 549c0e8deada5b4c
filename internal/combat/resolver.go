// Package combat resolves skill checks, contests and strikes, and runs the
// round-by-round state machine of a player versus foe encounter.
package combat

import (
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
)

var checkDice = dice.Must(dice.New(6, 3))

// Config holds the dependencies for a Resolver
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Resolver applies the check, contest and strike rules
type Resolver struct {
	roller dice.Roller
}

// NewResolver creates a resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Resolver{roller: cfg.Roller}, nil
}

// Roller returns the randomness source
func (r *Resolver) Roller() dice.Roller {
	return r.roller
}

// CheckResult is the outcome of one skill check
type CheckResult struct {
	Success bool
	Roll    dice.Roll
	// Skill is the skill actually rolled, which differs from the requested
	// one when an untrained skill falls back to its default
	Skill    entities.Skill
	Target   int
	Modifier int
}

// Margin is target plus modifier minus the roll. Larger is a more decisive success.
func (c *CheckResult) Margin() int {
	return c.Target + c.Modifier - c.Roll.Total()
}

// SkillCheck rolls 3d6 against the actor's rating for skill. Success iff the
// total is at most target plus modifier.
func (r *Resolver) SkillCheck(rec Recorder, actor entities.Combatant, skill entities.Skill, modifier int) (*CheckResult, error) {
	if actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}

	name := capitalize(actor.GetName())
	rolled := skill
	target := actor.SkillRating(skill)

	if target == 0 {
		def, ok := entities.DefaultOf(skill)
		if ok {
			record(rec, name, " untrained in ", string(skill), ", defaults to ", string(def.Skill), " ", signed(def.Modifier))
			target = actor.SkillRating(def.Skill) + def.Modifier
			rolled = def.Skill
		} else {
			record(rec, name, " ", string(skill), " untrained and has no default, target ", 10+def.Modifier)
			target = entities.UntrainedTarget
		}
	}

	roll, err := checkDice.Roll(r.roller, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s check", skill)
	}
	record(rec, name, " rolling ", string(rolled), " against ", target, " + ", modifier, ": ", roll)

	return &CheckResult{
		Success:  roll.Total() <= target+modifier,
		Roll:     roll,
		Skill:    rolled,
		Target:   target,
		Modifier: modifier,
	}, nil
}

// ContestResult is the outcome of an opposed check
type ContestResult struct {
	Won      bool
	Attacker *CheckResult
	// Defender is nil when the attacker failed outright
	Defender *CheckResult
}

// Contest pits a against b on skill. a loses if its own check fails, wins if
// b's fails, and otherwise needs a strictly larger margin: exact ties go to b.
func (r *Resolver) Contest(rec Recorder, a, b entities.Combatant, skill entities.Skill, modifier int) (*ContestResult, error) {
	attacker, err := r.SkillCheck(rec, a, skill, modifier)
	if err != nil {
		return nil, err
	}
	if !attacker.Success {
		return &ContestResult{Won: false, Attacker: attacker}, nil
	}

	defender, err := r.SkillCheck(rec, b, skill, 0)
	if err != nil {
		return nil, err
	}
	if !defender.Success {
		return &ContestResult{Won: true, Attacker: attacker, Defender: defender}, nil
	}

	won := attacker.Margin() > defender.Margin()
	winner := b.GetName()
	if won {
		winner = a.GetName()
	}
	record(rec, "Contest won by ", winner)

	return &ContestResult{Won: won, Attacker: attacker, Defender: defender}, nil
}

// Outcome of a strike
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeEvade
	OutcomeHit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeEvade:
		return "evade"
	case OutcomeHit:
		return "hit"
	}
	return "unknown"
}

// StrikeResult describes a strike. Roll is the failed attack roll on a miss,
// the evasion roll on an evade, and the damage roll on a hit.
type StrikeResult struct {
	Outcome Outcome
	Roll    dice.Roll
}

// Damage is the damage dealt, zero unless the strike hit for a positive total
func (s *StrikeResult) Damage() int {
	if s.Outcome != OutcomeHit || s.Roll.Total() < 0 {
		return 0
	}
	return s.Roll.Total()
}

// Strike has attacker swing at defender with its weapon skill. A hit may be
// evaded if the defender can still evade this round; otherwise weapon damage
// minus the defender's damage reduction is applied.
func (r *Resolver) Strike(rec Recorder, attacker, defender entities.Combatant, modifier int) (*StrikeResult, error) {
	attack, err := r.SkillCheck(rec, attacker, attacker.WeaponSkill(), modifier)
	if err != nil {
		return nil, err
	}
	if !attack.Success {
		return &StrikeResult{Outcome: OutcomeMiss, Roll: attack.Roll}, nil
	}

	if defender.CanEvade() {
		evade, err := r.SkillCheck(rec, defender, entities.SkillEvasion, 0)
		if err != nil {
			return nil, err
		}
		if evade.Success {
			return &StrikeResult{Outcome: OutcomeEvade, Roll: evade.Roll}, nil
		}
	}

	dr := defender.DamageReduction()
	if dr > 0 {
		record(rec, capitalize(defender.GetName()), " applies damage reduction of ", dr)
	}

	dmg, err := attacker.WeaponDamage().Roll(r.roller, modifier-dr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll damage for %s", attacker.GetName())
	}
	record(rec, capitalize(attacker.GetName()), " rolling damage: ", dmg)

	defender.Injure(dmg.Total())
	return &StrikeResult{Outcome: OutcomeHit, Roll: dmg}, nil
}
