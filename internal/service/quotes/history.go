package quotes

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"SignalDesk/internal/domain/models"
	xhttp "SignalDesk/pkg/http"
)

// History fetches daily close history from the quote provider's REST
// candle endpoint. It backfills instruments whose local store does not
// yet hold a full lookback window.
type History struct {
	baseURL string
	token   string
	c       *xhttp.Client
}

// NewHistory creates a daily-close history client.
func NewHistory(baseURL, token string, timeout time.Duration) *History {
	opts := []xhttp.ClientOption{}
	if timeout > 0 {
		opts = append(opts, xhttp.WithTimeout(timeout))
	}
	return &History{baseURL: baseURL, token: token, c: xhttp.NewClient(opts...)}
}

// candleResponse is the provider's column-oriented candle payload.
type candleResponse struct {
	Status string    `json:"s"`
	TS     []int64   `json:"t"`
	Close  []float64 `json:"c"`
}

// DailyCloses returns daily closes for symbol between from and to, in
// ascending timestamp order.
func (h *History) DailyCloses(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error) {
	var resp candleResponse
	err := h.c.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    h.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {"D"},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
			"token":      {h.token},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", symbol, err)
	}
	if resp.Status == "no_data" {
		return nil, nil
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("fetch candles %s: status %q", symbol, resp.Status)
	}
	if len(resp.TS) != len(resp.Close) {
		return nil, fmt.Errorf("fetch candles %s: %d timestamps vs %d closes", symbol, len(resp.TS), len(resp.Close))
	}

	out := make(models.PriceSeries, 0, len(resp.TS))
	for i, ts := range resp.TS {
		out = append(out, models.PricePoint{TS: ts, Close: resp.Close[i]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TS < out[j].TS })
	return out, nil
}
