package models

// SymbolSummary holds the per-symbol running totals for a year-filtered set
// of capital gains, plus the member transactions. Recomputed from scratch on
// every change to the underlying set, never patched.
type SymbolSummary struct {
	Symbol       string                   `json:"symbol"`
	ProceedsUSD  float64                  `json:"proceeds_usd"`
	CostUSD      float64                  `json:"cost_usd"`
	GainLossUSD  float64                  `json:"gain_loss_usd"`
	ProceedsJPY  int64                    `json:"proceeds_jpy"`
	CostJPY      int64                    `json:"cost_jpy"`
	GainLossJPY  int64                    `json:"gain_loss_jpy"`
	Transactions []CapitalGainTransaction `json:"transactions"`
}

type CapitalGainTotals struct {
	Count       int     `json:"count"`
	ProceedsUSD float64 `json:"proceeds_usd"`
	CostUSD     float64 `json:"cost_usd"`
	GainLossUSD float64 `json:"gain_loss_usd"`
	ProceedsJPY int64   `json:"proceeds_jpy"`
	CostJPY     int64   `json:"cost_jpy"`
	GainLossJPY int64   `json:"gain_loss_jpy"`
}

type DividendTotals struct {
	Count    int     `json:"count"`
	GrossUSD float64 `json:"gross_usd"`
	TaxUSD   float64 `json:"tax_usd"`
	NetUSD   float64 `json:"net_usd"`
	GrossJPY int64   `json:"gross_jpy"`
	TaxJPY   int64   `json:"tax_jpy"`
	NetJPY   int64   `json:"net_jpy"`
}

type InterestTotals struct {
	Count  int     `json:"count"`
	NetUSD float64 `json:"net_usd"`
	NetJPY int64   `json:"net_jpy"`
}

// Summary is the full year-filtered view served to the presentation layer.
type Summary struct {
	Year              int                      `json:"year"`
	AvailableYears    []int                    `json:"available_years"`
	SymbolGroups      []SymbolSummary          `json:"symbol_groups"`
	CapitalGains      []CapitalGainTransaction `json:"capital_gains"`
	CapitalGainTotals CapitalGainTotals        `json:"capital_gain_totals"`
	Dividends         []DividendTransaction    `json:"dividends"`
	DividendTotals    DividendTotals           `json:"dividend_totals"`
	Interest          []InterestTransaction    `json:"interest"`
	InterestTotals    InterestTotals           `json:"interest_totals"`
	RateCount         int                      `json:"rate_count"`
}
