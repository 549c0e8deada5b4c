package scenes

import (
	"bytes"
	_ "embed"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/spix/internal/errors"
)

//go:embed data/script.yaml
var defaultScript []byte

// Script holds every line of narrative text, keyed by scene then line
type Script struct {
	lines map[string]map[string]string
}

// DefaultScript loads the script embedded in the binary
func DefaultScript() (*Script, error) {
	return LoadScript(bytes.NewReader(defaultScript))
}

// LoadScript parses a YAML script. Every scene must map line keys to
// non-empty text.
func LoadScript(r io.Reader) (*Script, error) {
	var lines map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&lines); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse script")
	}
	if len(lines) == 0 {
		return nil, errors.InvalidArgument("script is empty")
	}

	vb := errors.NewValidationBuilder()
	for scene, keys := range lines {
		for key, text := range keys {
			if strings.TrimSpace(text) == "" {
				vb.Fieldf(scene+"."+key, "has no text")
			}
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return &Script{lines: lines}, nil
}

// Has reports whether scene.key is defined
func (s *Script) Has(scene, key string) bool {
	_, ok := s.lines[scene][key]
	return ok
}

// Text returns scene.key with {placeholders} filled from vars, given as
// name, value pairs. A missing line renders as [scene.key] so a gap in the
// script shows up on screen instead of ending the session.
func (s *Script) Text(scene, key string, vars ...string) string {
	text, ok := s.lines[scene][key]
	if !ok {
		slog.Warn("Script line missing", "scene", scene, "key", key)
		return "[" + scene + "." + key + "]"
	}
	if len(vars) < 2 {
		return text
	}

	pairs := make([]string, 0, len(vars))
	for i := 0; i+1 < len(vars); i += 2 {
		pairs = append(pairs, "{"+vars[i]+"}", vars[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
