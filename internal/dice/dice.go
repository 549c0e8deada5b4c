// Package dice implements dice specs and rolls for skill checks, damage and loot.
//
// Randomness comes from an rpg-toolkit dice.Roller so production play can use
// the toolkit's default roller while tests and seeded sessions plug in a
// deterministic one.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/spix/internal/errors"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock -mock_names=Roller=MockRoller github.com/KirkDiggler/rpg-toolkit/dice Roller

// Roller is the randomness source every roll draws from
type Roller = toolkitdice.Roller

var (
	// Regex for parsing dice notation like "2d6" or "d4"
	diceNotationRegex = regexp.MustCompile(`^(\d*)d(\d+)$`)
)

// Dice is an immutable spec of faces and roll count
type Dice struct {
	faces int
	count int
}

// New creates a dice spec, failing with InvalidSpec on a non-positive faces or count
func New(faces, count int) (Dice, error) {
	if faces < 1 || count < 1 {
		return Dice{}, errors.InvalidSpecf("roll what?! %dd%d", count, faces).
			WithMeta("faces", faces).
			WithMeta("count", count)
	}
	return Dice{faces: faces, count: count}, nil
}

// D is shorthand for a single die with the given faces. It panics on an
// invalid spec and is meant for constants in code.
func D(faces int) Dice {
	return Must(New(faces, 1))
}

// Must panics if err is not nil
func Must(d Dice, err error) Dice {
	if err != nil {
		panic(err)
	}
	return d
}

// Parse maps notation such as "2d6", "d4" or a bare integer "6" (meaning 1d6)
// to a Dice spec
func Parse(spec string) (Dice, error) {
	notation := strings.ToLower(strings.TrimSpace(spec))
	if notation == "" {
		return Dice{}, errors.InvalidSpecf("empty dice notation")
	}

	if faces, err := strconv.Atoi(notation); err == nil {
		return New(faces, 1)
	}

	matches := diceNotationRegex.FindStringSubmatch(notation)
	if len(matches) != 3 {
		return Dice{}, errors.InvalidSpecf("weird spec: %s (expected format: XdY)", spec)
	}

	count := 1
	if matches[1] != "" {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return Dice{}, errors.InvalidSpecf("invalid dice count in notation: %s", spec)
		}
		count = n
	}

	faces, err := strconv.Atoi(matches[2])
	if err != nil {
		return Dice{}, errors.InvalidSpecf("invalid die size in notation: %s", spec)
	}

	return New(faces, count)
}

// MustParse is Parse for notation known at compile time
func MustParse(spec string) Dice {
	return Must(Parse(spec))
}

// Faces returns the number of faces per die
func (d Dice) Faces() int {
	return d.faces
}

// Count returns how many dice are rolled
func (d Dice) Count() int {
	return d.count
}

// IsZero reports whether d is the zero value rather than a valid spec
func (d Dice) IsZero() bool {
	return d.faces == 0
}

// Min is the smallest possible total before modifiers
func (d Dice) Min() int {
	return d.count
}

// Max is the largest possible total before modifiers
func (d Dice) Max() int {
	return d.count * d.faces
}

// Roll rolls every die once and adds modifier to the total
func (d Dice) Roll(r Roller, modifier int) (Roll, error) {
	if d.IsZero() {
		return Roll{}, errors.InvalidSpecf("cannot roll an empty dice spec")
	}

	results, err := r.RollN(d.count, d.faces)
	if err != nil {
		return Roll{}, errors.Wrapf(err, "failed to roll %s", d)
	}
	if len(results) != d.count {
		return Roll{}, errors.Internalf("roller returned %d results for %s", len(results), d)
	}

	return Roll{dice: d, results: results, modifier: modifier}, nil
}

// String renders the spec as "d6" or "3d6"
func (d Dice) String() string {
	if d.count == 1 {
		return fmt.Sprintf("d%d", d.faces)
	}
	return fmt.Sprintf("%dd%d", d.count, d.faces)
}

// MarshalText encodes the dice in notation form
func (d Dice) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText parses dice notation
func (d *Dice) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Dice{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
