package watchlist

import (
	"time"

	"SignalDesk/internal/domain/models"
	domsvc "SignalDesk/internal/domain/service"
	"SignalDesk/pkg/config"
	"SignalDesk/pkg/util"
)

// Source materializes the configured watchlist as domain instruments.
// It is built once at startup and read-only afterwards.
type Source struct {
	instruments []models.Instrument
	bySymbol    map[string]models.Instrument
	benchmark   string
}

// New parses the configured watchlist. Unknown or malformed dates are
// dropped here so the engine only ever sees well-formed calendar dates.
func New(cfg *config.Config) *Source {
	s := &Source{
		bySymbol:  make(map[string]models.Instrument, len(cfg.Watchlist)),
		benchmark: cfg.Benchmark,
	}
	for _, w := range cfg.Watchlist {
		in := models.Instrument{
			Symbol:            w.Symbol,
			Name:              w.Name,
			Tier:              tierOf(w.Tier),
			IV:                w.IV,
			FiscalAnchorMonth: anchorOf(w.FiscalAnchorMonth),
			Adjusted:          w.Adjusted == nil || *w.Adjusted,
			LastEarn:          parsedDate(w.LastEarn),
			NextEarn:          parsedDate(w.NextEarn),
			QtrEnd:            parsedDate(w.QtrEnd),
		}
		for _, e := range w.Events {
			d := parsedDate(e.Date)
			if d.IsZero() {
				continue
			}
			in.Events = append(in.Events, models.CatalystEvent{Name: e.Name, Date: d})
		}
		for _, sp := range w.Splits {
			d := parsedDate(sp.Date)
			if d.IsZero() || sp.Ratio <= 0 {
				continue
			}
			in.Splits = append(in.Splits, models.Split{Date: d, Ratio: sp.Ratio})
		}
		s.instruments = append(s.instruments, in)
		s.bySymbol[in.Symbol] = in
	}
	return s
}

func (s *Source) Instruments() []models.Instrument { return s.instruments }

func (s *Source) Instrument(symbol string) (models.Instrument, bool) {
	in, ok := s.bySymbol[symbol]
	return in, ok
}

func (s *Source) Benchmark() string { return s.benchmark }

func tierOf(t int) models.Tier {
	if t == 2 {
		return models.Tier2
	}
	return models.Tier1
}

func anchorOf(m int) time.Month {
	if m >= 1 && m <= 12 {
		return time.Month(m)
	}
	return time.March
}

func parsedDate(s string) time.Time {
	t, _ := util.ParseDate(s)
	return t
}

var _ domsvc.WatchlistSource = (*Source)(nil)
