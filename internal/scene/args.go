package scene

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/spix/internal/errors"
)

// ParseArgs turns typed command line literals into scene arguments:
// "boolean:true" -> true, "int:42" -> 42, "string:x" or plain "x" -> "x".
func ParseArgs(raw []string) ([]any, error) {
	args := make([]any, 0, len(raw))
	for _, param := range raw {
		kind, value, found := strings.Cut(param, ":")
		if !found {
			args = append(args, param)
			continue
		}

		switch strings.ToLower(kind) {
		case "boolean", "bool":
			args = append(args, strings.EqualFold(value, "true"))
		case "int":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.InvalidArgumentf("argument %q is not an int", param)
			}
			args = append(args, n)
		case "string":
			args = append(args, value)
		default:
			args = append(args, param)
		}
	}
	return args, nil
}

// Arg returns args[i] as T, or def when there are fewer arguments
func Arg[T any](args []any, i int, def T) (T, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	v, ok := args[i].(T)
	if !ok {
		return def, errors.InvalidArgumentf("argument %d is %T, want %T", i, args[i], def)
	}
	return v, nil
}
