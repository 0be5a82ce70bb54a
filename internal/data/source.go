package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"battery-arbitrage/internal/model"
)

// ErrNoData is returned when no usable price point was found.
var ErrNoData = errors.New("no price data found")

// FileInfo describes one price file matched by a Source.
type FileInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"modified_at"`
}

// Source loads every price file in Dir matching any of Patterns and merges
// them into one time-sorted series.
type Source struct {
	Dir      string
	Patterns []string
	Location *time.Location
	Cache    *SeriesCache
	Logger   zerolog.Logger
}

func (s *Source) cacheKey() string {
	return s.Dir + "|" + strings.Join(s.Patterns, ",")
}

// Load returns the merged series, served from the cache when possible.
func (s *Source) Load(ctx context.Context) ([]model.PricePoint, error) {
	if points, ok := s.Cache.Get(s.cacheKey()); ok {
		return points, nil
	}
	return s.load(ctx)
}

// Refresh reads the directory again and replaces the cached series.
func (s *Source) Refresh(ctx context.Context) error {
	s.Cache.Invalidate(s.cacheKey())
	_, err := s.load(ctx)
	return err
}

func (s *Source) load(ctx context.Context) ([]model.PricePoint, error) {
	paths, err := s.match()
	if err != nil {
		return nil, err
	}

	var all []model.PricePoint
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		points, err := ReadPriceFile(path, s.Location)
		if err != nil {
			s.Logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable price file")
			continue
		}
		s.Logger.Debug().Str("file", filepath.Base(path)).Int("points", len(points)).Msg("price file loaded")
		all = append(all, points...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, s.Dir)
	}
	sortPoints(all)

	s.Cache.Set(s.cacheKey(), all)
	s.Logger.Info().Int("files", len(paths)).Int("points", len(all)).Msg("price series loaded")
	return all, nil
}

// ListFiles reports the files Load would read, sorted by name.
func (s *Source) ListFiles() ([]FileInfo, error) {
	paths, err := s.match()
	if err != nil {
		return nil, err
	}
	out := make([]FileInfo, 0, len(paths))
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		out = append(out, FileInfo{Name: filepath.Base(path), Size: st.Size(), ModTime: st.ModTime()})
	}
	return out, nil
}

func (s *Source) match() ([]string, error) {
	patterns := s.Patterns
	if len(patterns) == 0 {
		patterns = []string{"*.csv"}
	}

	seen := map[string]bool{}
	var out []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(s.Dir, strings.TrimSpace(p)))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			if st, err := os.Stat(m); err != nil || st.IsDir() {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
