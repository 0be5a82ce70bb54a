package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "a;Kuupäev;NPS Eesti\n"

func TestSource_LoadMergesAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", []byte(header+"1;01.03.2024 01:00;20\n"))
	writeFile(t, dir, "a.csv", []byte(header+"1;01.03.2024 00:00;10\n"))
	writeFile(t, dir, "ignored.txt", []byte(header+"1;01.03.2024 02:00;30\n"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	src := &Source{Dir: dir, Patterns: []string{"*.csv"}, Location: time.UTC, Cache: NewSeriesCache(0), Logger: zerolog.Nop()}

	points, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 10.0, points[0].Price, 1e-9)
	assert.InDelta(t, 20.0, points[1].Price, 1e-9)

	// Served from the cache until refreshed.
	writeFile(t, dir, "c.csv", []byte(header+"1;01.03.2024 02:00;30\n"))
	points, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 2)

	require.NoError(t, src.Refresh(context.Background()))
	points, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestSource_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", []byte(header+"1;01.03.2024 00:00;10\n"))
	writeFile(t, dir, "bad.json", []byte("not json"))

	src := &Source{Dir: dir, Patterns: []string{"*.csv", "*.json"}, Location: time.UTC, Logger: zerolog.Nop()}
	points, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestSource_NoData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", []byte(header))

	src := &Source{Dir: dir, Location: time.UTC, Logger: zerolog.Nop()}
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSource_ListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", []byte("x"))
	writeFile(t, dir, "a.json", []byte("[]"))
	writeFile(t, dir, "a.csv", []byte("xyz"))

	src := &Source{Dir: dir, Patterns: []string{"*.csv", "*.json", "a.*"}, Logger: zerolog.Nop()}
	files, err := src.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, int64(3), files[0].Size)
	assert.Equal(t, "a.json", files[1].Name)
	assert.Equal(t, "b.csv", files[2].Name)
}

func TestSource_BadPattern(t *testing.T) {
	src := &Source{Dir: t.TempDir(), Patterns: []string{"["}, Logger: zerolog.Nop()}
	_, err := src.ListFiles()
	assert.Error(t, err)
}
