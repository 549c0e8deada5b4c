package entities

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Skill names a trainable rating
type Skill string

const (
	SkillMartial Skill = "martial"
	SkillEvasion Skill = "evasion"
	SkillFancy   Skill = "fancy"
	SkillUnarmed Skill = "unarmed"
	SkillTech    Skill = "tech"
)

// UntrainedTarget is the fixed target for a skill with no rating and no default
const UntrainedTarget = 7

// AllSkills in display order
var AllSkills = []Skill{SkillMartial, SkillEvasion, SkillFancy, SkillUnarmed, SkillTech}

// Title returns the capitalized skill name
func (s Skill) Title() string {
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(string(s))
}

// Default describes the fallback used when a skill is untrained
type Default struct {
	Skill    Skill
	Modifier int
}

// DefaultOf returns the fallback for an untrained skill. ok is false when the
// skill has no fallback; the returned modifier is still meaningful for
// narrating the would-be target.
func DefaultOf(skill Skill) (Default, bool) {
	switch skill {
	case SkillFancy:
		return Default{Skill: SkillMartial, Modifier: -3}, true
	case SkillUnarmed:
		return Default{Skill: SkillMartial, Modifier: -2}, true
	default:
		return Default{Modifier: -3}, false
	}
}

// Skills is the set of ratings shared by players and foes. Zero means untrained.
type Skills struct {
	Martial int
	Evasion int
	Fancy   int
	Unarmed int
	Tech    int
}

// SkillRating returns the raw rating for skill
func (s *Skills) SkillRating(skill Skill) int {
	switch skill {
	case SkillMartial:
		return s.Martial
	case SkillEvasion:
		return s.Evasion
	case SkillFancy:
		return s.Fancy
	case SkillUnarmed:
		return s.Unarmed
	case SkillTech:
		return s.Tech
	}
	return 0
}

// SetRating overwrites the rating for skill
func (s *Skills) SetRating(skill Skill, value int) {
	switch skill {
	case SkillMartial:
		s.Martial = value
	case SkillEvasion:
		s.Evasion = value
	case SkillFancy:
		s.Fancy = value
	case SkillUnarmed:
		s.Unarmed = value
	case SkillTech:
		s.Tech = value
	}
}

// TrainedIn reports whether skill has a nonzero rating
func (s *Skills) TrainedIn(skill Skill) bool {
	return s.SkillRating(skill) != 0
}

// Effective returns the target a check on skill would use and whether it
// comes from training, a default, or the untrained baseline
func (s *Skills) Effective(skill Skill) (target int, trained, defaulted bool) {
	if s.TrainedIn(skill) {
		return s.SkillRating(skill), true, false
	}
	def, ok := DefaultOf(skill)
	if ok {
		return s.SkillRating(def.Skill) + def.Modifier, false, true
	}
	return 10 + def.Modifier, false, false
}
