package saves

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/pkg/clock"
)

const saveExt = ".json"

// FileConfig contains configuration for the filesystem save repository
type FileConfig struct {
	Dir   string
	Clock clock.Clock
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return errors.InvalidArgument("dir cannot be empty")
	}
	return nil
}

type fileRepository struct {
	dir   string
	clock clock.Clock
}

// NewFile creates a repository that keeps one JSON file per save under
// <dir>/<owner>/<name>.json
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &fileRepository{dir: filepath.Clean(cfg.Dir), clock: clk}, nil
}

func (r *fileRepository) path(owner, name string) string {
	return filepath.Join(r.dir, owner, name+saveExt)
}

func (r *fileRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled(err.Error())
	}
	name, err := validatePut(input)
	if err != nil {
		return nil, err
	}

	savedAt := r.clock.Now().UTC()
	data, err := encode(name, savedAt, input.Snapshot)
	if err != nil {
		return nil, err
	}

	ownerDir := filepath.Join(r.dir, input.Owner)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save dir for %s", input.Owner)
	}

	// write then rename so a crash never leaves half a save behind
	tmp, err := os.CreateTemp(ownerDir, name+".*.tmp")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp save")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to write save %s", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to write save %s", name)
	}
	// List reads SavedAt back from the modification time
	if err := os.Chtimes(tmp.Name(), savedAt, savedAt); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to stamp save %s", name)
	}
	if err := os.Rename(tmp.Name(), r.path(input.Owner, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "failed to store save %s", name)
	}

	slog.Debug("Save written", "backend", "file", "owner", input.Owner, "name", name)
	return &PutOutput{Summary: Summary{Name: name, SavedAt: savedAt}}, nil
}

func (r *fileRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled(err.Error())
	}
	name, err := validateKey(input.Owner, input.Name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path(input.Owner, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("save %s not found", name).WithMeta("name", name)
		}
		return nil, errors.Wrapf(err, "failed to read save %s", name)
	}
	return decode(raw)
}

func (r *fileRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled(err.Error())
	}
	vb := errors.NewValidationBuilder()
	validateSegment("owner", input.Owner, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(r.dir, input.Owner))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ListOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to list saves for %s", input.Owner)
	}

	saves := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", entry.Name())
		}
		saves = append(saves, Summary{
			Name:    strings.TrimSuffix(entry.Name(), saveExt),
			SavedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return &ListOutput{Saves: saves}, nil
}
