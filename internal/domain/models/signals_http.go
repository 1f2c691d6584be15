package models

// Requests for the signals/backtest HTTP endpoints. Defined in domain for
// consistency and reuse.

type SignalsRequest struct {
	Symbol string `query:"symbol" json:"symbol"`
}

type BacktestRequest struct {
	Date string `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
}

type DateNavRequest struct {
	Date string `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
}
