package combat

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/spix/internal/dice"
)

// Recorder receives transcript lines describing rolls as they happen
type Recorder func(line string)

// Nop discards transcript lines
func Nop(string) {}

// record joins parts into one transcript line. A roll renders as its total,
// followed by the breakdown when there is more to it than a single die.
func record(rec Recorder, parts ...any) {
	if rec == nil {
		return
	}
	var b strings.Builder
	for _, part := range parts {
		switch p := part.(type) {
		case dice.Roll:
			b.WriteString(strconv.Itoa(p.Total()))
			if p.Detailed() {
				b.WriteString(" (" + p.String() + ")")
			}
		case string:
			b.WriteString(p)
		case int:
			b.WriteString(strconv.Itoa(p))
		}
	}
	rec(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
