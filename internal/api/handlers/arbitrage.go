package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"battery-arbitrage/internal/api/models"
	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/data"
	"battery-arbitrage/internal/model"
	"battery-arbitrage/internal/service"
)

// Simulator runs one arbitrage simulation.
type Simulator interface {
	Simulate(ctx context.Context, batt model.BatteryConfig, opts service.Options) (*service.Outcome, error)
}

// ArbitrageHandler handles arbitrage simulation requests
type ArbitrageHandler struct {
	sim      Simulator
	defaults config.BatteryConfig
	presets  *BatteryHandler
	logger   zerolog.Logger
}

// NewArbitrageHandler creates a new arbitrage handler. defaults is the
// configured battery that request fields are overlaid on.
func NewArbitrageHandler(sim Simulator, defaults config.BatteryConfig, presets *BatteryHandler, logger zerolog.Logger) *ArbitrageHandler {
	return &ArbitrageHandler{
		sim:      sim,
		defaults: defaults,
		presets:  presets,
		logger:   logger.With().Str("handler", "arbitrage").Logger(),
	}
}

// RunArbitrage handles POST /api/v1/arbitrage
func (h *ArbitrageHandler) RunArbitrage(c *gin.Context) {
	var req models.ArbitrageRequest
	// An empty body means "use the configured battery".
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
			return
		}
	}

	cfg, err := h.resolveBattery(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_BATTERY", err.Error()))
		return
	}
	batt, err := cfg.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_BATTERY", err.Error()))
		return
	}

	out, err := h.sim.Simulate(c.Request.Context(), batt, service.Options{Source: "api", Record: req.Record})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidBattery):
			c.JSON(http.StatusBadRequest, models.NewError("INVALID_BATTERY", err.Error()))
		case errors.Is(err, data.ErrNoData):
			c.JSON(http.StatusBadRequest, models.NewError("NO_DATA", err.Error()))
		default:
			h.logger.Error().Err(err).Msg("simulation failed")
			c.JSON(http.StatusInternalServerError, models.NewError("RUN_ERROR", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, buildResponse(out, cfg.Name, req.IncludeDays))
}

// resolveBattery overlays the preset and then the request fields on the defaults.
func (h *ArbitrageHandler) resolveBattery(req models.ArbitrageRequest) (config.BatteryConfig, error) {
	cfg := h.defaults
	if id := strings.TrimSpace(req.BatteryFile); id != "" {
		preset, err := h.presets.Load(id)
		if err != nil {
			return config.BatteryConfig{}, err
		}
		cfg = config.MergeBattery(cfg, preset)
	}

	cfg = config.MergeBattery(cfg, config.BatteryConfig{
		CapacityMWh: req.CapacityMWh,
		PowerMW:     req.PowerMW,
		Efficiency:  req.Efficiency,
		MaxGapHours: req.MaxGapHours,
	})
	return cfg, nil
}

func buildResponse(out *service.Outcome, name string, includeDays bool) models.ArbitrageResponse {
	b := out.Battery
	resp := models.ArbitrageResponse{
		ID:     out.RunID,
		Status: "completed",
		Battery: models.BatteryInfo{
			Name:                 name,
			CapacityMWh:          b.CapacityMWh,
			PowerMW:              b.PowerMW,
			Efficiency:           b.Efficiency,
			MaxGapHours:          b.MaxGapHours,
			ChargeHours:          b.ChargeHours(),
			DischargeHours:       b.DischargeHours(),
			DeliverableEnergyMWh: b.DeliverableEnergyMWh(),
		},
		MonthlyStats:  make([]models.MonthlyStat, 0, len(out.Summary.Months)),
		TotalCycles:   out.Summary.TotalCycles,
		TotalProfit:   out.Summary.TotalProfit,
		AverageProfit: out.Summary.AverageProfit,
		DaysEvaluated: out.Result.Evaluated,
		DaysSkipped:   out.Result.Skipped,
		DaysNoCycle:   out.Result.NoCycle,
	}

	for _, m := range out.Summary.Months {
		resp.MonthlyStats = append(resp.MonthlyStats, models.MonthlyStat{
			Month:                m.Month,
			Cycles:               m.Cycles,
			TotalProfit:          m.TotalProfit,
			AverageProfit:        m.AverageProfit,
			AveragePrice:         m.Price.Mean,
			MinPrice:             m.Price.Min,
			MaxPrice:             m.Price.Max,
			DeviationFromAverage: m.DeviationFromAverage,
		})
	}

	if includeDays {
		resp.Days = convertDays(out.Result.Days)
	}
	return resp
}

func convertDays(days []backtest.DayResult) []models.DayCycle {
	out := make([]models.DayCycle, len(days))
	for i, d := range days {
		out[i] = models.DayCycle{
			Date:               d.Date.Format("2006-01-02"),
			Month:              d.Month,
			ChargeTimes:        d.ChargeTimes,
			DischargeTimes:     d.DischargeTimes,
			ChargeHeuristic:    string(d.Cycle.ChargeHeuristic),
			DischargeHeuristic: string(d.Cycle.DischargeHeuristic),
			AvgChargePrice:     d.AvgChargePrice,
			AvgDischargePrice:  d.AvgDischargePrice,
			GapHours:           d.GapHours,
			Profit:             d.Profit,
		}
	}
	return out
}
