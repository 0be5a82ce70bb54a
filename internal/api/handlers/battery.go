package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"battery-arbitrage/internal/api/models"
	"battery-arbitrage/internal/config"
)

// ErrPresetNotFound is returned when a battery preset id has no file.
var ErrPresetNotFound = errors.New("battery preset not found")

// BatteryHandler handles battery-related requests
type BatteryHandler struct {
	batteryDir string
	logger     zerolog.Logger
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler(dir string, logger zerolog.Logger) *BatteryHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &BatteryHandler{
		batteryDir: dir,
		logger:     logger.With().Str("handler", "battery").Str("dir", dir).Logger(),
	}
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the preset with the given id (file name with or without extension).
func (h *BatteryHandler) Load(id string) (config.BatteryConfig, error) {
	// Ids never address anything outside the battery directory.
	name := filepath.Base(id)
	candidates := []string{name}
	if !isPresetFile(name) {
		candidates = []string{name + ".yaml", name + ".yml"}
	}
	for _, cand := range candidates {
		path := filepath.Join(h.batteryDir, cand)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return config.LoadBatteryFile(path)
	}
	return config.BatteryConfig{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryPreset{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		// A missing preset directory is not an error for the client.
		h.logger.Warn().Err(err).Msg("failed to read battery directory")
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}
		path := filepath.Join(h.batteryDir, entry.Name())
		b, err := config.LoadBatteryFile(path)
		if err != nil {
			h.logger.Warn().Err(err).Str("file", entry.Name()).Msg("skipping invalid battery file")
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		name := b.Name
		if name == "" {
			name = id
		}
		batteries = append(batteries, models.BatteryPreset{
			ID:          id,
			Name:        name,
			File:        entry.Name(),
			CapacityMWh: b.CapacityMWh,
			PowerMW:     b.PowerMW,
			Efficiency:  b.Efficiency,
			MaxGapHours: b.MaxGapHours,
		})
	}
	sort.Slice(batteries, func(i, j int) bool { return batteries[i].ID < batteries[j].ID })

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}
