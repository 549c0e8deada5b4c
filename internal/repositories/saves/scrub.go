package saves

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/spix/internal/errors"
	redisclient "github.com/KirkDiggler/spix/internal/redis"
)

// ScrubReport lists what ScrubRedis found
type ScrubReport struct {
	// Checked is the number of save keys read
	Checked int
	// Corrupt holds save keys whose value no longer decodes
	Corrupt []string
	// Orphans holds save keys named by an index but missing
	Orphans []string
	// Removed is set when the findings were deleted
	Removed bool
}

// Clean reports whether nothing was wrong
func (r *ScrubReport) Clean() bool {
	return len(r.Corrupt) == 0 && len(r.Orphans) == 0
}

// ScrubRedis scans every save in Redis for entries Get would reject and
// index entries whose save is gone. With remove set, corrupt saves are
// deleted along with their index entries and orphans are dropped from
// their index.
func ScrubRedis(ctx context.Context, client redisclient.Client, remove bool) (*ScrubReport, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	report := &ScrubReport{}

	iter := client.Scan(ctx, 0, saveKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		report.Checked++
		if _, err := decode(raw); err != nil {
			slog.Debug("Corrupt save found", "key", key, "error", err)
			report.Corrupt = append(report.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan saves")
	}

	indexes := client.Scan(ctx, 0, indexKeyPrefix+"*", 0).Iterator()
	for indexes.Next(ctx) {
		index := indexes.Val()
		owner := strings.TrimPrefix(index, indexKeyPrefix)
		names, err := client.ZRange(ctx, index, 0, -1).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read index %s", index)
		}
		for _, name := range names {
			n, err := client.Exists(ctx, SaveKey(owner, name)).Result()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to check %s", name)
			}
			if n == 0 {
				report.Orphans = append(report.Orphans, SaveKey(owner, name))
			}
		}
	}
	if err := indexes.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan indexes")
	}

	sort.Strings(report.Corrupt)
	sort.Strings(report.Orphans)

	if !remove || report.Clean() {
		return report, nil
	}

	pipe := client.TxPipeline()
	for _, key := range report.Corrupt {
		pipe.Del(ctx, key)
		if owner, name, ok := splitSaveKey(key); ok {
			pipe.ZRem(ctx, IndexKey(owner), name)
		}
	}
	for _, key := range report.Orphans {
		if owner, name, ok := splitSaveKey(key); ok {
			pipe.ZRem(ctx, IndexKey(owner), name)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to remove scrubbed saves")
	}

	report.Removed = true
	slog.Info("Saves scrubbed", "corrupt", len(report.Corrupt), "orphans", len(report.Orphans))
	return report, nil
}

// splitSaveKey reverses SaveKey. Owners never contain a colon.
func splitSaveKey(key string) (owner, name string, ok bool) {
	rest, found := strings.CutPrefix(key, saveKeyPrefix)
	if !found {
		return "", "", false
	}
	return strings.Cut(rest, ":")
}
