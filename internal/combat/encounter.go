package combat

import (
	"log/slog"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
)

const (
	// PowerAttackBonus is added to a power attack at the cost of evasion
	PowerAttackBonus = 1
	// EscapeBonus is added to the player's evasion contest when fleeing
	EscapeBonus = 3
)

// Phase of an encounter
type Phase int

const (
	PhaseAwaitingPlayerAction Phase = iota
	PhaseResolvingPlayerAction
	PhaseAwaitingFoeAction
	PhaseResolvingFoeAction
	PhaseVictory
	PhaseFled
	PhaseDefeated
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlayerAction:
		return "awaiting_player_action"
	case PhaseResolvingPlayerAction:
		return "resolving_player_action"
	case PhaseAwaitingFoeAction:
		return "awaiting_foe_action"
	case PhaseResolvingFoeAction:
		return "resolving_foe_action"
	case PhaseVictory:
		return "victory"
	case PhaseFled:
		return "fled"
	case PhaseDefeated:
		return "defeated"
	}
	return "unknown"
}

// Over reports whether the encounter has ended
func (p Phase) Over() bool {
	return p == PhaseVictory || p == PhaseFled || p == PhaseDefeated
}

// Action the player can take on their turn
type Action int

const (
	ActionNone Action = iota
	ActionAttack
	ActionPowerAttack
	ActionUseItem
	ActionEscape
	// ActionPass leaves the round without acting, as when backing out of
	// the inventory or changing settings
	ActionPass
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionPowerAttack:
		return "power_attack"
	case ActionUseItem:
		return "use_item"
	case ActionEscape:
		return "escape"
	case ActionPass:
		return "pass"
	}
	return "none"
}

// free actions do not give the foe a turn
func (a Action) free() bool {
	return a == ActionUseItem || a == ActionPass
}

// Choice is the player's selection for a round
type Choice struct {
	Action Action
	// ItemID is required for ActionUseItem
	ItemID string
}

// ItemUse describes an item used in combat
type ItemUse struct {
	ItemID string
	Item   *entities.Item
	// Roll is the heal or damage roll
	Roll dice.Roll
	// Check is set when a grenade required a skill check
	Check *CheckResult
	// Applied is false when a grenade was fumbled or the item did nothing
	Applied bool
}

// TotemRescue describes a totem consumed to save the player from defeat
type TotemRescue struct {
	ItemID string
	Item   *entities.Item
	Roll   dice.Roll
}

// Spoils are what the player collects on victory
type Spoils struct {
	Cash  int
	Exp   int
	Drops []string
}

// RoundReport is everything that happened in one call to Resolve
type RoundReport struct {
	Choice Choice

	PlayerStrike *StrikeResult
	Escape       *ContestResult
	// EscapeDenied is set when the player won the contest against a plot foe
	EscapeDenied bool
	Item         *ItemUse

	FoeStrike *StrikeResult
	Totem     *TotemRescue
	Spoils    *Spoils

	// Stalemate is set when the foe acted and neither side took damage
	Stalemate bool
	Phase     Phase
}

// EncounterConfig holds the dependencies for an Encounter
type EncounterConfig struct {
	Resolver *Resolver
	Player   *entities.Player
	Foe      *entities.Foe
}

// Validate ensures all required dependencies are provided
func (c *EncounterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Player == nil {
		vb.RequiredField("Player")
	}
	if c.Foe == nil {
		vb.RequiredField("Foe")
	}

	return vb.Build()
}

// Encounter is one fight between the player and a foe.
//
// Each round starts with BeginRound, after which the player's Choice is
// resolved by Resolve. Attack, power attack and escape hand the turn to the
// foe; item use and passing are free. The encounter ends in victory, a
// successful escape, or defeat when the player drops with no totem to spare.
type Encounter struct {
	resolver *Resolver
	player   *entities.Player
	foe      *entities.Foe

	phase     Phase
	rounds    int
	autoFight bool
	retake    Action
}

// NewEncounter creates an encounter awaiting the first round
func NewEncounter(cfg *EncounterConfig) (*Encounter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Encounter{
		resolver: cfg.Resolver,
		player:   cfg.Player,
		foe:      cfg.Foe,
		phase:    PhaseAwaitingPlayerAction,
	}, nil
}

func (e *Encounter) Phase() Phase             { return e.phase }
func (e *Encounter) Foe() *entities.Foe       { return e.foe }
func (e *Encounter) Player() *entities.Player { return e.player }

// Rounds counts exchanges in which the foe took its turn
func (e *Encounter) Rounds() int { return e.rounds }

// SetAutoFight toggles repeating the last attack after a stalemate
func (e *Encounter) SetAutoFight(on bool) {
	e.autoFight = on
	if !on {
		e.retake = ActionNone
	}
}

// RetakeAction returns the attack to repeat without asking, if any
func (e *Encounter) RetakeAction() (Action, bool) {
	return e.retake, e.retake != ActionNone
}

// BeginRound resets both combatants' per-round flags
func (e *Encounter) BeginRound() {
	if e.phase.Over() {
		return
	}
	e.player.NewRound()
	e.foe.NewRound()
	e.phase = PhaseAwaitingPlayerAction
}

// UsableItems lists inventory items that can be used in combat
func (e *Encounter) UsableItems() ([]entities.Stack, error) {
	return e.player.Inventory.Stacks(e.player.Items(), entities.TagHeal, entities.TagGrenade)
}

// Resolve plays out the player's choice and, unless it was free or ended
// the fight, the foe's answer
func (e *Encounter) Resolve(rec Recorder, choice Choice) (*RoundReport, error) {
	if e.phase != PhaseAwaitingPlayerAction {
		return nil, errors.Newf(errors.CodeFailedPrecondition, "cannot act during %s", e.phase).
			WithMeta("phase", e.phase.String())
	}

	report := &RoundReport{Choice: choice}
	e.phase = PhaseResolvingPlayerAction

	if err := e.resolvePlayer(rec, choice, report); err != nil {
		e.phase = PhaseAwaitingPlayerAction
		return nil, err
	}

	if e.phase == PhaseFled {
		report.Phase = e.phase
		return report, nil
	}

	if e.foe.Slain() {
		spoils, err := e.victory()
		if err != nil {
			return nil, err
		}
		report.Spoils = spoils
		report.Phase = e.phase
		return report, nil
	}

	if choice.Action.free() {
		e.phase = PhaseAwaitingPlayerAction
		report.Phase = e.phase
		return report, nil
	}

	e.phase = PhaseAwaitingFoeAction
	if err := e.resolveFoe(rec, report); err != nil {
		return nil, err
	}
	e.rounds++

	report.Stalemate = !e.player.WasInjured() && !e.foe.WasInjured()
	if e.autoFight && report.Stalemate && (choice.Action == ActionAttack || choice.Action == ActionPowerAttack) {
		e.retake = choice.Action
	} else {
		e.retake = ActionNone
	}

	report.Phase = e.phase
	return report, nil
}

func (e *Encounter) resolvePlayer(rec Recorder, choice Choice, report *RoundReport) error {
	switch choice.Action {
	case ActionAttack:
		result, err := e.resolver.Strike(rec, e.player, e.foe, 0)
		if err != nil {
			return errors.Wrap(err, "failed to resolve attack")
		}
		report.PlayerStrike = result

	case ActionPowerAttack:
		e.player.ForfeitEvade()
		result, err := e.resolver.Strike(rec, e.player, e.foe, PowerAttackBonus)
		if err != nil {
			return errors.Wrap(err, "failed to resolve power attack")
		}
		report.PlayerStrike = result

	case ActionUseItem:
		use, err := e.useItem(rec, choice.ItemID)
		if err != nil {
			return err
		}
		report.Item = use

	case ActionEscape:
		result, err := e.resolver.Contest(rec, e.player, e.foe, entities.SkillEvasion, EscapeBonus)
		if err != nil {
			return errors.Wrap(err, "failed to resolve escape")
		}
		report.Escape = result
		if result.Won && e.foe.Tagged(entities.TagPlot) {
			report.EscapeDenied = true
		} else if result.Won {
			e.phase = PhaseFled
			slog.Debug("Player fled encounter", "foe_id", e.foe.GetID())
		}

	case ActionPass:

	default:
		return errors.InvalidChoicef("unknown combat action %d", choice.Action)
	}
	return nil
}

func (e *Encounter) useItem(rec Recorder, id string) (*ItemUse, error) {
	if !e.player.Inventory.Has(id) {
		return nil, errors.InvalidChoicef("no %s in inventory", id).WithMeta("item_id", id)
	}
	item, err := e.player.Items().LookupItem(id)
	if err != nil {
		return nil, err
	}

	use := &ItemUse{ItemID: id, Item: item}
	roller := e.resolver.Roller()

	switch {
	case item.Tagged(entities.TagHeal) && item.HasEffect():
		roll, err := item.EffectDice.Roll(roller, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", id)
		}
		e.player.Heal(roll.Total())
		e.player.Inventory.Remove(id, 1)
		use.Roll = roll
		use.Applied = true

	case item.Tagged(entities.TagGrenade) && item.HasEffect():
		roll, err := item.EffectDice.Roll(roller, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", id)
		}
		use.Roll = roll
		use.Applied = true
		if skill, ok := item.SkillTag(); ok {
			check, err := e.resolver.SkillCheck(rec, e.player, skill, 0)
			if err != nil {
				return nil, err
			}
			use.Check = check
			use.Applied = check.Success
		}
		if use.Applied {
			e.foe.Injure(roll.Total())
		}
		e.player.Inventory.Remove(id, 1)
	}

	return use, nil
}

func (e *Encounter) resolveFoe(rec Recorder, report *RoundReport) error {
	e.phase = PhaseResolvingFoeAction

	result, err := e.resolver.Strike(rec, e.foe, e.player, 0)
	if err != nil {
		return errors.Wrap(err, "failed to resolve foe strike")
	}
	report.FoeStrike = result

	if !e.player.Slain() {
		e.phase = PhaseAwaitingPlayerAction
		return nil
	}

	rescue, err := e.totemRescue()
	if err != nil {
		return err
	}
	if rescue == nil {
		e.phase = PhaseDefeated
		slog.Debug("Player defeated", "foe_id", e.foe.GetID(), "rounds", e.rounds+1)
		return nil
	}

	report.Totem = rescue
	e.phase = PhaseAwaitingPlayerAction
	return nil
}

// totemRescue consumes a random totem and heals by its effect roll
func (e *Encounter) totemRescue() (*TotemRescue, error) {
	totems, err := e.player.Inventory.Stacks(e.player.Items(), entities.TagTotem)
	if err != nil {
		return nil, err
	}
	if len(totems) == 0 {
		return nil, nil
	}

	roller := e.resolver.Roller()
	idx, err := dice.Pick(roller, len(totems))
	if err != nil {
		return nil, err
	}
	totem := totems[idx]

	rescue := &TotemRescue{ItemID: totem.ID, Item: totem.Item}
	if totem.Item.HasEffect() {
		roll, err := totem.Item.EffectDice.Roll(roller, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", totem.ID)
		}
		rescue.Roll = roll
		e.player.Heal(roll.Total())
	}
	if e.player.Slain() {
		e.player.Heal(1)
	}
	e.player.Inventory.Remove(totem.ID, 1)
	return rescue, nil
}

func (e *Encounter) victory() (*Spoils, error) {
	drops, err := e.foe.Loot().Roll(e.resolver.Roller())
	if err != nil {
		return nil, err
	}

	spoils := &Spoils{Cash: e.foe.Cash(), Exp: e.foe.Exp(), Drops: drops}
	e.player.Cash += spoils.Cash
	e.player.Exp += spoils.Exp
	for _, id := range drops {
		e.player.Inventory.Add(id, 1)
	}

	e.phase = PhaseVictory
	slog.Debug("Player won encounter",
		"foe_id", e.foe.GetID(),
		"rounds", e.rounds,
		"drops", len(drops),
	)
	return spoils, nil
}
