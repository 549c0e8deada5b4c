package entities

// Vitals holds hit points and the round-scoped combat flags.
// Outside of Overheal, 0 <= hp <= maxHP after every mutation.
type Vitals struct {
	hp       int
	maxHP    int
	canEvade bool
	injured  bool
}

// NewVitals returns vitals clamped into range
func NewVitals(hp, maxHP int) Vitals {
	if maxHP < 0 {
		maxHP = 0
	}
	v := Vitals{hp: hp, maxHP: maxHP, canEvade: true}
	v.clamp()
	return v
}

func (v *Vitals) clamp() {
	if v.hp < 0 {
		v.hp = 0
	}
	if v.hp > v.maxHP {
		v.hp = v.maxHP
	}
}

// HitPoints returns current hp
func (v *Vitals) HitPoints() int { return v.hp }

// MaxHitPoints returns maximum hp
func (v *Vitals) MaxHitPoints() int { return v.maxHP }

// CanEvade reports whether an evasion check is allowed this round
func (v *Vitals) CanEvade() bool { return v.canEvade }

// ForfeitEvade gives up evasion for the rest of the round
func (v *Vitals) ForfeitEvade() { v.canEvade = false }

// WasInjured reports whether positive damage landed this round
func (v *Vitals) WasInjured() bool { return v.injured }

// NewRound resets the per-round flags
func (v *Vitals) NewRound() {
	v.canEvade = true
	v.injured = false
}

// Injure applies damage, treating negative amounts as zero
func (v *Vitals) Injure(amount int) {
	if amount < 0 {
		amount = 0
	}
	v.hp -= amount
	if v.hp < 0 {
		v.hp = 0
	}
	v.injured = amount > 0
}

// Heal restores hp up to the maximum
func (v *Vitals) Heal(amount int) {
	v.hp += amount
	if v.hp > v.maxHP {
		v.hp = v.maxHP
	}
}

// Slain reports whether hp has reached zero
func (v *Vitals) Slain() bool {
	return v.hp <= 0
}

// Overheal adds hp without the maximum clamp. Only narrative events
// (a stiff drink) use this; the excess wears off on the next Restore.
func (v *Vitals) Overheal(amount int) {
	v.hp += amount
	if v.hp < 0 {
		v.hp = 0
	}
}

// Overhealed reports whether hp currently exceeds the maximum
func (v *Vitals) Overhealed() bool {
	return v.hp > v.maxHP
}

// Restore sets hp to the maximum
func (v *Vitals) Restore() {
	v.hp = v.maxHP
}

// RaiseMaxHP changes the maximum without touching current hp
func (v *Vitals) RaiseMaxHP(amount int) {
	v.maxHP += amount
	if v.maxHP < 1 {
		v.maxHP = 1
	}
	if amount < 0 && v.hp > v.maxHP {
		v.hp = v.maxHP
	}
}
