package models

import "time"

// CapitalGainTransaction is a fully derived realized sale. JPY amounts are
// floored at the conversion step, so GainLossJPY is always the difference
// of the two already-floored integers, not a floored difference.
type CapitalGainTransaction struct {
	ID                    int        `json:"id"`
	Symbol                string     `json:"symbol"`
	Quantity              float64    `json:"quantity"`
	DateAcquired          *time.Time `json:"date_acquired"` // nil means unknown/various acquisition date
	DateSold              time.Time  `json:"date_sold"`
	ProceedsUSD           float64    `json:"proceeds_usd"`
	CostUSD               float64    `json:"cost_usd"`
	WashSaleDisallowedUSD float64    `json:"ws_loss_disallowed_usd"`
	RateAcquired          float64    `json:"rate_acquired"`
	RateSold              float64    `json:"rate_sold"`
	ProceedsJPY           int64      `json:"proceeds_jpy"`
	CostJPY               int64      `json:"cost_jpy"`
	GainLossJPY           int64      `json:"gain_loss_jpy"`
	IsWashSale            bool       `json:"is_wash_sale"`
	Notes                 string     `json:"notes"`
}

// DividendTransaction is a fully derived dividend receipt.
// GrossUSD = NetUSD + TaxUSD always holds; the JPY fields are independently
// floored conversions, so GrossJPY is not guaranteed to equal
// TaxJPY + NetJPY after rounding. That is an accepted artifact of the
// conversion contract, not something to correct.
type DividendTransaction struct {
	ID          int       `json:"id"`
	Symbol      string    `json:"symbol"`
	Date        time.Time `json:"date"`
	NetUSD      float64   `json:"net_usd"`
	TaxUSD      float64   `json:"tax_usd"`
	GrossUSD    float64   `json:"gross_usd"`
	Rate        float64   `json:"rate"`
	GrossJPY    int64     `json:"gross_jpy"`
	TaxJPY      int64     `json:"tax_jpy"`
	NetJPY      int64     `json:"net_jpy"`
	Description string    `json:"description"`
}

// InterestTransaction is a fully derived interest payment. No tax leg.
type InterestTransaction struct {
	ID          int       `json:"id"`
	Symbol      string    `json:"symbol"`
	Date        time.Time `json:"date"`
	NetUSD      float64   `json:"net_usd"`
	Rate        float64   `json:"rate"`
	NetJPY      int64     `json:"net_jpy"`
	Description string    `json:"description"`
}
