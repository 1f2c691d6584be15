package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	models "SignalDesk/internal/domain/models"
	icache "SignalDesk/internal/service/cache"
	"SignalDesk/internal/service/metrics"
	"SignalDesk/internal/service/ratelimit"
	"SignalDesk/internal/usecase"
	xhttp "SignalDesk/pkg/http"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsHandler exposes the signal and backtest endpoints over Echo.
type SignalsHandler struct {
	eval  *usecase.SignalEvaluator
	bt    *usecase.BacktestUseCase
	index *usecase.SignalDateIndex
	cache icache.BytesCache
	rl    *ratelimit.Limiter
	l     *applogger.Logger
}

func NewSignalsHandler(eval *usecase.SignalEvaluator, bt *usecase.BacktestUseCase, index *usecase.SignalDateIndex) *SignalsHandler {
	metrics.Register()
	return &SignalsHandler{eval: eval, bt: bt, index: index, rl: ratelimit.New()}
}

func (h *SignalsHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *SignalsHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signals", h.Signals)
	g.GET("/signals/:symbol", h.Signal)
	g.GET("/backtest", h.Backtest)
	g.GET("/backtest/dates", h.Dates)
	g.GET("/backtest/dates/prev", h.PrevDate)
	g.GET("/backtest/dates/next", h.NextDate)
	e.GET("/health", h.Health)
}

func (h *SignalsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SignalsHandler) Signals(c echo.Context) error {
	start := time.Now()
	endpoint := "signals"
	defer func() { metrics.EngineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.rl.Allow(c.RealIP()+":signals", 5, 2) {
		if h.l != nil {
			h.l.Warn("signals rate_limited", applogger.String("remote", c.RealIP()))
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	asOf := util.Midnight(time.Now().UTC())
	cacheKey := "signals:" + asOf.Format("2006-01-02")
	if b, ok := h.cached(cacheKey, endpoint); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	res, err := h.eval.EvaluateAll(c.Request().Context(), asOf, true)
	if err != nil {
		metrics.EngineErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("signals usecase error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(cacheKey, res, 30*time.Second, endpoint)
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) Signal(c echo.Context) error {
	start := time.Now()
	endpoint := "signal"
	defer func() { metrics.EngineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol required")
	}
	if !h.rl.Allow(c.RealIP()+":signal", 5, 2) {
		if h.l != nil {
			h.l.Warn("signal rate_limited", applogger.String("remote", c.RealIP()))
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	asOf := util.Midnight(time.Now().UTC())
	res, err := h.eval.Evaluate(c.Request().Context(), symbol, asOf, true)
	if err != nil {
		metrics.EngineErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("signal usecase error", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) Backtest(c echo.Context) error {
	start := time.Now()
	endpoint := "backtest"
	defer func() { metrics.EngineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	date, ok := util.ParseDate(req.Date)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid date")
	}
	if !h.rl.Allow(c.RealIP()+":backtest", 3, 1) {
		if h.l != nil {
			h.l.Warn("backtest rate_limited", applogger.String("remote", c.RealIP()))
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := "backtest:" + req.Date
	if b, ok := h.cached(cacheKey, endpoint); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	report, err := h.bt.Run(c.Request().Context(), date)
	if err != nil {
		metrics.EngineErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("backtest usecase error", applogger.String("date", req.Date), applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(cacheKey, report, 5*time.Minute, endpoint)
	return xhttp.SuccessResponse(c, report)
}

func (h *SignalsHandler) Dates(c echo.Context) error {
	start := time.Now()
	endpoint := "dates"
	defer func() { metrics.EngineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	dates, err := h.index.Dates(c.Request().Context())
	if err != nil {
		metrics.EngineErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("dates usecase error", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, dates)
}

func (h *SignalsHandler) PrevDate(c echo.Context) error {
	return h.navigate(c, "dates_prev", h.index.Prev)
}

func (h *SignalsHandler) NextDate(c echo.Context) error {
	return h.navigate(c, "dates_next", h.index.Next)
}

func (h *SignalsHandler) navigate(c echo.Context, endpoint string, nav func(ctx context.Context, date time.Time) (*models.SignalDate, error)) error {
	start := time.Now()
	defer func() { metrics.EngineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.DateNavRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	date, ok := util.ParseDate(req.Date)
	if !ok {
		return xhttp.BadRequestResponse(c, "invalid date")
	}

	res, err := nav(c.Request().Context(), date)
	if err != nil {
		metrics.EngineErrors.WithLabelValues(endpoint).Inc()
		if h.l != nil {
			h.l.Error("date nav usecase error", applogger.String("date", req.Date), applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	if res == nil {
		return xhttp.NotFoundResponse(c, "no adjacent signal date")
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsHandler) cached(key, endpoint string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		if h.l != nil {
			h.l.Warn(endpoint+" cache_get_error", applogger.Error(err))
		}
		return nil, false
	}
	if ok && h.l != nil {
		h.l.Debug(endpoint+" cache_hit", applogger.String("key", key))
	}
	return b, ok
}

func (h *SignalsHandler) store(key string, v interface{}, ttl time.Duration, endpoint string) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, ttl); err != nil && h.l != nil {
		h.l.Warn(endpoint+" cache_set_error", applogger.Error(err))
	}
}
