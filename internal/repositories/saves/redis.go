package saves

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/spix/internal/redis"
)

const (
	saveKeyPrefix  = "save:"
	indexKeyPrefix = "saves:"
)

// RedisConfig contains configuration for the Redis save repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a Redis-backed save repository. Each save is a JSON
// string at save:<owner>:<name>; saves:<owner> is a sorted set of names
// scored by save time.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: clk}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	name, err := validatePut(input)
	if err != nil {
		return nil, err
	}

	savedAt := r.clock.Now().UTC()
	data, err := encode(name, savedAt, input.Snapshot)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, SaveKey(input.Owner, name), data, 0)
	pipe.ZAdd(ctx, IndexKey(input.Owner), redis.Z{Score: float64(savedAt.UnixMilli()), Member: name})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store save %s", name)
	}

	slog.Debug("Save written", "backend", "redis", "owner", input.Owner, "name", name)
	return &PutOutput{Summary: Summary{Name: name, SavedAt: savedAt}}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	name, err := validateKey(input.Owner, input.Name)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.Get(ctx, SaveKey(input.Owner, name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("save %s not found", name).WithMeta("name", name)
		}
		return nil, errors.Wrapf(err, "failed to get save %s", name)
	}
	return decode(raw)
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	vb := errors.NewValidationBuilder()
	validateSegment("owner", input.Owner, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	members, err := r.client.ZRangeWithScores(ctx, IndexKey(input.Owner), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list saves for %s", input.Owner)
	}

	saves := make([]Summary, 0, len(members))
	for _, z := range members {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		saves = append(saves, Summary{Name: name, SavedAt: time.UnixMilli(int64(z.Score)).UTC()})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return &ListOutput{Saves: saves}, nil
}

// SaveKey returns the Redis key for one save
// Exposed for testing purposes
func SaveKey(owner, name string) string {
	return fmt.Sprintf("%s%s:%s", saveKeyPrefix, owner, name)
}

// IndexKey returns the Redis key listing an owner's saves
func IndexKey(owner string) string {
	return indexKeyPrefix + owner
}
