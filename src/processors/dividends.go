package processors

import (
	"math"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// CalculateDividends derives dividend transactions from raw history rows.
// The withheld tax is recovered from the free-text description; gross is
// always net + tax in USD. Gross, tax and net are each floored to JPY
// independently, so the JPY legs need not sum exactly after rounding.
func CalculateDividends(rows []models.HistoryRow, rates models.RateTable) []models.DividendTransaction {
	out := make([]models.DividendTransaction, 0, len(rows))
	for _, row := range rows {
		date, ok := utils.ParseFlexibleDate(row.TradeDate)
		if !ok {
			continue
		}

		netUSD := utils.ParseMoney(row.Amount)
		taxUSD := utils.ExtractWithheldTax(row.Description)
		grossUSD := netUSD + taxUSD

		// Dividends are assumed received and converted on the trade date.
		rate, _ := ResolveRate(date, rates)

		out = append(out, models.DividendTransaction{
			ID:          len(out),
			Symbol:      row.Symbol,
			Date:        date,
			NetUSD:      netUSD,
			TaxUSD:      taxUSD,
			GrossUSD:    grossUSD,
			Rate:        rate,
			GrossJPY:    int64(math.Floor(grossUSD * rate)),
			TaxJPY:      int64(math.Floor(taxUSD * rate)),
			NetJPY:      int64(math.Floor(netUSD * rate)),
			Description: row.Description,
		})
	}
	return out
}
