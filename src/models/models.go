package models

// Schema identifies which of the two recognized Firstrade export layouts
// a file matched. It is decided once per file, after which every row is
// parsed into the record type for that variant.
type Schema string

const (
	SchemaGainLoss Schema = "gainloss"
	SchemaHistory  Schema = "history"
	SchemaUnknown  Schema = "unknown"
)

// GainLossRow is a raw row from a realized gain/loss export. All fields are
// kept as source strings; parsing happens in the calculators.
type GainLossRow struct {
	Symbol             string `json:"symbol"`
	Description        string `json:"description"`
	Quantity           string `json:"quantity"`
	DateAcquired       string `json:"date_acquired"` // may be "VARIOUS"
	DateSold           string `json:"date_sold"`
	SalesProceeds      string `json:"sales_proceeds"` // currency-formatted, e.g. "$1,500.00"
	AdjustedCost       string `json:"adjusted_cost"`
	WashSaleDisallowed string `json:"ws_loss_disallowed"`
	WashSaleFlag       string `json:"wash_sales"` // "YES" or other
}

// HistoryRow is a raw row from a unified account history export. Only rows
// whose Action is Dividend or Interest are kept; everything else is out of
// scope and dropped during classification.
type HistoryRow struct {
	Symbol      string `json:"symbol"`
	Action      string `json:"action"`
	Description string `json:"description"` // may embed a withheld-tax sub-amount
	TradeDate   string `json:"trade_date"`  // ISO yyyy-mm-dd
	Amount      string `json:"amount"`      // net amount, currency-formatted
}

// RateTable maps an ISO date string to the published USD→JPY rate for that
// day. Sparse: weekends and holidays have no entry. Populated once per
// fetch and replaced wholesale, never mutated.
type RateTable map[string]float64
