package watcher

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/samber/lo"
)

type fileState struct {
	modTime time.Time
	size    int64
}

// pollStrategy diffs directory snapshots on a fixed interval, for
// platforms where the blocking primitive is unreliable.
type pollStrategy struct {
	root     string
	interval time.Duration
	prev     map[string]fileState
}

func newPollStrategy(root string, interval time.Duration) (*pollStrategy, error) {
	prev, err := snapshot(root)
	if err != nil {
		return nil, err
	}

	return &pollStrategy{
		root:     root,
		interval: interval,
		prev:     prev,
	}, nil
}

func (s *pollStrategy) next(ctx context.Context) ([]rawEvent, error) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cur, err := snapshot(s.root)
			if err != nil {
				return nil, err
			}

			raws := diff(s.prev, cur)
			s.prev = cur

			if len(raws) > 0 {
				return raws, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *pollStrategy) close() error {
	return nil
}

func snapshot(root string) (map[string]fileState, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir: %w", err)
	}

	states := make(map[string]fileState, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// entry vanished between ReadDir and Info; the next
			// snapshot will report the removal
			continue
		}

		states[entry.Name()] = fileState{
			modTime: info.ModTime(),
			size:    info.Size(),
		}
	}

	return states, nil
}

// diff reports creations and modifications from cur and removals from
// prev, each group in name order so repeated polls stay deterministic.
func diff(prev, cur map[string]fileState) []rawEvent {
	names := lo.Keys(cur)
	sort.Strings(names)

	raws := make([]rawEvent, 0, len(names))
	for _, name := range names {
		before, ok := prev[name]
		if !ok {
			raws = append(raws, rawEvent{name: name, op: rawCreate})
			continue
		}
		if before != cur[name] {
			raws = append(raws, rawEvent{name: name, op: rawWrite})
		}
	}

	removed := lo.Keys(prev)
	sort.Strings(removed)
	for _, name := range removed {
		if _, ok := cur[name]; !ok {
			raws = append(raws, rawEvent{name: name, op: rawRemove})
		}
	}

	return raws
}
