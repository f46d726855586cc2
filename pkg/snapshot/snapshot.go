package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/fiber"
)

// Snapshot is the serialized host tree after one commit.
type Snapshot struct {
	Root  uint64    `json:"root"`
	Cycle uint64    `json:"cycle"`
	App   string    `json:"app,omitempty"`
	Time  time.Time `json:"time"`
	HTML  string    `json:"html"`
	Stats Stats     `json:"stats"`
}

// Stats is the stored form of fiber.CommitStats.
type Stats struct {
	Units      int   `json:"units"`
	Slices     int   `json:"slices"`
	Inserts    int   `json:"inserts"`
	Updates    int   `json:"updates"`
	Deletions  int   `json:"deletions"`
	Effects    int   `json:"effects"`
	Cleanups   int   `json:"cleanups"`
	DurationNS int64 `json:"durationNs"`
}

// StatsOf converts commit statistics for storage.
func StatsOf(s fiber.CommitStats) Stats {
	return Stats{
		Units:      s.Units,
		Slices:     s.Slices,
		Inserts:    s.Inserts,
		Updates:    s.Updates,
		Deletions:  s.Deletions,
		Effects:    s.Effects,
		Cleanups:   s.Cleanups,
		DurationNS: s.Duration.Nanoseconds(),
	}
}

// Key returns the storage key. Keys sort by root, then cycle.
func (s Snapshot) Key() string {
	return Key(s.Root, s.Cycle)
}

// Key formats the storage key of a root's cycle.
func Key(root, cycle uint64) string {
	return fmt.Sprintf("%06d-%010d", root, cycle)
}

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	// Put stores s under s.Key(), replacing any previous value.
	Put(ctx context.Context, s Snapshot) error

	// Get returns the snapshot stored under key, or an E102 error.
	Get(ctx context.Context, key string) (Snapshot, error)

	// List returns every stored key in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend.
	Close() error
}

func encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.New("E101").WithDetail(s.Key()).Wrap(err)
	}
	return data, nil
}

func decode(key string, data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.New("E103").WithDetail(key).Wrap(err)
	}
	return s, nil
}

func notFound(key string) error {
	return errors.New("E102").
		WithDetail(fmt.Sprintf("No snapshot is stored under %q.", key)).
		WithSuggestion("Run 'weft snapshots list' to see the stored keys.")
}

// Open creates the store selected by cfg. The "none" backend returns a nil
// Store and no error.
func Open(cfg *config.Config) (Store, error) {
	sc := cfg.Snapshot
	switch sc.Backend {
	case "", config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendBolt:
		return OpenBolt(cfg.SnapshotPath())
	case config.BackendS3:
		return NewS3(NewS3Client(sc.Region, sc.Endpoint), sc.Bucket, sc.Prefix), nil
	default:
		return nil, errors.New("E100").WithDetail(fmt.Sprintf("Unknown backend %q.", sc.Backend))
	}
}
