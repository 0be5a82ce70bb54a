package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-arbitrage/internal/model"
)

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBattery(), cfg.Battery)
	assert.Equal(t, []string{"*.csv", "*.json"}, cfg.Data.Patterns)
	assert.Equal(t, 10*time.Minute, cfg.Data.CacheTTL)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 50, cfg.Report.DetailRows)
	assert.Equal(t, "info", cfg.Logging.Level)

	b, err := cfg.Battery.ToModel()
	require.NoError(t, err)
	assert.Equal(t, 2, b.ChargeHours())
	assert.Equal(t, 2, b.DischargeHours())
}

func TestLoad_FileWithBatteryPreset(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "small.yaml", `
battery:
  name: small
  capacity_mwh: 20
  power_mw: 10
  efficiency: 0.9
  max_gap_hours: 6
`)
	path := writeYAML(t, dir, "config.yaml", `
battery_file: small.yaml
battery:
  max_gap_hours: 4
data:
  dir: /var/prices
  cache_ttl: 90s
  patterns: "Tuulikutasu*.csv"
api:
  cors_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BatteryConfig{Name: "small", CapacityMWh: 20, PowerMW: 10, Efficiency: 0.9, MaxGapHours: Hours(4)}, cfg.Battery)
	assert.Equal(t, "/var/prices", cfg.Data.Dir)
	assert.Equal(t, 90*time.Second, cfg.Data.CacheTTL)
	assert.Equal(t, []string{"Tuulikutasu*.csv"}, cfg.Data.Patterns)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.API.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ARBITRAGE_API_PORT", "9090")
	t.Setenv("ARBITRAGE_DATA_PATTERNS", "a.csv,b.json")
	t.Setenv("ARBITRAGE_BATTERY_CAPACITY_MWH", "200")
	t.Setenv("ARBITRAGE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, []string{"a.csv", "b.json"}, cfg.Data.Patterns)
	assert.InDelta(t, 200.0, cfg.Battery.CapacityMWh, 1e-9)
	assert.InDelta(t, 50.0, cfg.Battery.PowerMW, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"efficiency above one": "battery:\n  efficiency: 1.5\n",
		"negative gap":         "battery:\n  max_gap_hours: -1\n",
		"bad port":             "api:\n  port: 70000\n",
		"bad timezone":         "data:\n  timezone: Mars/Olympus\n",
		"negative detail rows": "report:\n  detail_rows: -1\n",
		"missing preset":       "battery_file: nope.yaml\n",
		"broken yaml":          "battery: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), "config.yaml", content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_WrapsBatteryError(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Battery.PowerMW = -1
	assert.ErrorIs(t, cfg.Validate(), model.ErrInvalidBattery)
}

func TestLoadBatteryFile(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "b.yaml", "battery:\n  name: x\n  capacity_mwh: 1\n  power_mw: 1\n  efficiency: 1\n  max_gap_hours: 2\n")

	b, err := LoadBatteryFile(path)
	require.NoError(t, err)
	assert.Equal(t, BatteryConfig{Name: "x", CapacityMWh: 1, PowerMW: 1, Efficiency: 1, MaxGapHours: Hours(2)}, b)

	bad := writeYAML(t, dir, "bad.yaml", "battery: {")
	_, err = LoadBatteryFile(bad)
	assert.Error(t, err)
}

func TestMergeBattery(t *testing.T) {
	base := BatteryConfig{Name: "base", CapacityMWh: 100, PowerMW: 50, Efficiency: 0.87, MaxGapHours: Hours(8)}

	assert.Equal(t, base, MergeBattery(base, BatteryConfig{}))
	assert.Equal(t,
		BatteryConfig{Name: "base", CapacityMWh: 100, PowerMW: 25, Efficiency: 0.87, MaxGapHours: Hours(3)},
		MergeBattery(base, BatteryConfig{PowerMW: 25, MaxGapHours: Hours(3)}),
	)

	zero := MergeBattery(base, BatteryConfig{MaxGapHours: Hours(0)})
	assert.Equal(t, 0, zero.Gap())
	assert.Equal(t, 8, base.Gap())
}

func TestLoad_ExplicitZeroGap(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "preset.yaml", "battery:\n  capacity_mwh: 20\n  power_mw: 10\n  max_gap_hours: 0\n")

	fromPreset, err := Load(writeYAML(t, dir, "preset_only.yaml", "battery_file: preset.yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, fromPreset.Battery.Gap())

	overPreset, err := Load(writeYAML(t, dir, "override.yaml", "battery_file: preset.yaml\nbattery:\n  max_gap_hours: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, overPreset.Battery.Gap())

	inline, err := Load(writeYAML(t, dir, "inline.yaml", "battery:\n  max_gap_hours: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, inline.Battery.Gap())

	b, err := inline.Battery.ToModel()
	require.NoError(t, err)
	assert.Equal(t, 0, b.MaxGapHours)

	t.Setenv("ARBITRAGE_BATTERY_MAX_GAP_HOURS", "0")
	fromEnv, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, fromEnv.Battery.Gap())
}

func TestBatteryConfig_GapDefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, 8, BatteryConfig{}.Gap())
	assert.Nil(t, BatteryConfig{}.MaxGapHours)
}
