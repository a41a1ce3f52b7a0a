package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// Export categories matching the three derived collections.
const (
	CategoryCapitalGains = "capital-gains"
	CategoryDividends    = "dividends"
	CategoryInterest     = "interest"
)

// utf8BOM prefixes every export so spreadsheet applications pick up the
// encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders one category of an already year-filtered summary as
// UTF-8 CSV with a byte-order mark. Column sets mirror the derived record
// fields in both currencies.
func ExportCSV(summary *models.Summary, category string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	switch category {
	case CategoryCapitalGains:
		writeCapitalGains(w, summary.CapitalGains)
	case CategoryDividends:
		writeDividends(w, summary.Dividends)
	case CategoryInterest:
		writeInterest(w, summary.Interest)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCapitalGains(w *csv.Writer, txs []models.CapitalGainTransaction) {
	w.Write([]string{
		"Symbol", "Quantity", "Date Acquired", "Date Sold",
		"Proceeds (USD)", "Cost (USD)", "WS Loss Disallowed (USD)",
		"Rate Acquired", "Rate Sold",
		"Proceeds (JPY)", "Cost (JPY)", "Gain/Loss (JPY)",
		"Wash Sale", "Notes",
	})
	for _, tx := range txs {
		acquired := ""
		if tx.DateAcquired != nil {
			acquired = tx.DateAcquired.Format(utils.ISODateFormat)
		}
		washSale := ""
		if tx.IsWashSale {
			washSale = "YES"
		}
		w.Write([]string{
			tx.Symbol,
			usd(tx.Quantity),
			acquired,
			tx.DateSold.Format(utils.ISODateFormat),
			usd(tx.ProceedsUSD),
			usd(tx.CostUSD),
			usd(tx.WashSaleDisallowedUSD),
			rate(tx.RateAcquired),
			rate(tx.RateSold),
			jpy(tx.ProceedsJPY),
			jpy(tx.CostJPY),
			jpy(tx.GainLossJPY),
			washSale,
			tx.Notes,
		})
	}
}

func writeDividends(w *csv.Writer, txs []models.DividendTransaction) {
	w.Write([]string{
		"Symbol", "Date", "Gross (USD)", "Tax Withheld (USD)", "Net (USD)",
		"Rate", "Gross (JPY)", "Tax (JPY)", "Net (JPY)", "Description",
	})
	for _, tx := range txs {
		w.Write([]string{
			tx.Symbol,
			tx.Date.Format(utils.ISODateFormat),
			usd(tx.GrossUSD),
			usd(tx.TaxUSD),
			usd(tx.NetUSD),
			rate(tx.Rate),
			jpy(tx.GrossJPY),
			jpy(tx.TaxJPY),
			jpy(tx.NetJPY),
			tx.Description,
		})
	}
}

func writeInterest(w *csv.Writer, txs []models.InterestTransaction) {
	w.Write([]string{
		"Symbol", "Date", "Net (USD)", "Rate", "Net (JPY)", "Description",
	})
	for _, tx := range txs {
		w.Write([]string{
			tx.Symbol,
			tx.Date.Format(utils.ISODateFormat),
			usd(tx.NetUSD),
			rate(tx.Rate),
			jpy(tx.NetJPY),
			tx.Description,
		})
	}
}

func usd(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func jpy(v int64) string {
	return strconv.FormatInt(v, 10)
}
