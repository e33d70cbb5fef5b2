package bundle

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Set is an immutable collection of module entries with unique paths.
type Set struct {
	byKey   map[string]*Entry
	entries []*Entry // sorted by path
}

// NewSet returns a Set holding entries. Nil entries are ignored.
// It fails with ErrDuplicatePath if two entries share a path.
func NewSet(entries ...*Entry) (*Set, error) {
	s := &Set{
		byKey:   make(map[string]*Entry, len(entries)),
		entries: make([]*Entry, 0, len(entries)),
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		key := e.HashKey()
		if _, ok := s.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, e.Path())
		}
		s.byKey[key] = e
		s.entries = append(s.entries, e)
	}
	slices.SortFunc(s.entries, func(a, b *Entry) int {
		return a.Path().Compare(b.Path())
	})
	return s, nil
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Get returns the entry at path p.
func (s *Set) Get(p Path) (*Entry, bool) {
	e, ok := s.byKey[string(p)]
	return e, ok
}

// Paths returns entry paths in sorted order.
func (s *Set) Paths() []Path {
	paths := make([]Path, len(s.entries))
	for i, e := range s.entries {
		paths[i] = e.Path()
	}
	return paths
}

// Entries returns the entries sorted by path.
// The returned slice is a copy.
func (s *Set) Entries() []*Entry {
	return slices.Clone(s.entries)
}

// setCompareConfig holds configuration for Set.Equal.
type setCompareConfig struct {
	concurrency int
}

// SetOption configures Set.Equal.
type SetOption func(*setCompareConfig)

// SetCompareWithConcurrency limits how many entry pairs are compared at once.
// Values below 1 use GOMAXPROCS.
func SetCompareWithConcurrency(n int) SetOption {
	return func(c *setCompareConfig) {
		c.concurrency = n
	}
}

// Equal reports whether s and other hold the same paths and every pair of
// entries at the same path is Equal. Content comparisons run concurrently;
// the first read error cancels outstanding work and is returned.
func (s *Set) Equal(ctx context.Context, other *Set, opts ...SetOption) (bool, error) {
	if s == other {
		return true, nil
	}
	if s == nil || other == nil {
		return false, nil
	}
	if s.Len() != other.Len() {
		return false, nil
	}
	for key := range s.byKey {
		if _, ok := other.byKey[key]; !ok {
			return false, nil
		}
	}

	cfg := setCompareConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = runtime.GOMAXPROCS(0)
	}

	// Cancelled once a mismatch is found so pending pairs are skipped.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	mismatch := make(chan struct{}, 1)
	for _, e := range s.entries {
		o := other.byKey[e.HashKey()]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			equal, err := e.Equal(o)
			if err != nil {
				return err
			}
			if !equal {
				select {
				case mismatch <- struct{}{}:
				default:
				}
				cancel()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	select {
	case <-mismatch:
		return false, nil
	default:
	}
	// A cancelled parent means some pairs were never compared.
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}
