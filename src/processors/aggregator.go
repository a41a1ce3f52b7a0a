package processors

import (
	"sort"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
)

// FilterCapitalGainsByYear returns the transactions whose sale date falls
// in the given tax year. The input is never mutated; year selection only
// changes the filtered view.
func FilterCapitalGainsByYear(txs []models.CapitalGainTransaction, year int) []models.CapitalGainTransaction {
	out := make([]models.CapitalGainTransaction, 0)
	for _, tx := range txs {
		if tx.DateSold.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}

// FilterDividendsByYear returns the dividends dated in the given tax year.
func FilterDividendsByYear(txs []models.DividendTransaction, year int) []models.DividendTransaction {
	out := make([]models.DividendTransaction, 0)
	for _, tx := range txs {
		if tx.Date.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}

// FilterInterestByYear returns the interest payments dated in the given tax year.
func FilterInterestByYear(txs []models.InterestTransaction, year int) []models.InterestTransaction {
	out := make([]models.InterestTransaction, 0)
	for _, tx := range txs {
		if tx.Date.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}

// GroupBySymbol partitions capital gains by symbol and sums proceeds, cost
// and gain/loss in both currencies within each group. Groups come back in
// ascending symbol order for deterministic report output.
func GroupBySymbol(txs []models.CapitalGainTransaction) []models.SymbolSummary {
	groups := make(map[string]*models.SymbolSummary)
	for _, tx := range txs {
		g, ok := groups[tx.Symbol]
		if !ok {
			g = &models.SymbolSummary{Symbol: tx.Symbol}
			groups[tx.Symbol] = g
		}
		g.ProceedsUSD += tx.ProceedsUSD
		g.CostUSD += tx.CostUSD
		g.GainLossUSD += tx.ProceedsUSD - tx.CostUSD
		g.ProceedsJPY += tx.ProceedsJPY
		g.CostJPY += tx.CostJPY
		g.GainLossJPY += tx.GainLossJPY
		g.Transactions = append(g.Transactions, tx)
	}

	symbols := make([]string, 0, len(groups))
	for symbol := range groups {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	out := make([]models.SymbolSummary, 0, len(symbols))
	for _, symbol := range symbols {
		out = append(out, *groups[symbol])
	}
	return out
}

// SumCapitalGains totals a year-filtered capital-gains set.
func SumCapitalGains(txs []models.CapitalGainTransaction) models.CapitalGainTotals {
	var t models.CapitalGainTotals
	for _, tx := range txs {
		t.Count++
		t.ProceedsUSD += tx.ProceedsUSD
		t.CostUSD += tx.CostUSD
		t.GainLossUSD += tx.ProceedsUSD - tx.CostUSD
		t.ProceedsJPY += tx.ProceedsJPY
		t.CostJPY += tx.CostJPY
		t.GainLossJPY += tx.GainLossJPY
	}
	return t
}

// SumDividends totals a year-filtered dividend set.
func SumDividends(txs []models.DividendTransaction) models.DividendTotals {
	var t models.DividendTotals
	for _, tx := range txs {
		t.Count++
		t.GrossUSD += tx.GrossUSD
		t.TaxUSD += tx.TaxUSD
		t.NetUSD += tx.NetUSD
		t.GrossJPY += tx.GrossJPY
		t.TaxJPY += tx.TaxJPY
		t.NetJPY += tx.NetJPY
	}
	return t
}

// SumInterest totals a year-filtered interest set.
func SumInterest(txs []models.InterestTransaction) models.InterestTotals {
	var t models.InterestTotals
	for _, tx := range txs {
		t.Count++
		t.NetUSD += tx.NetUSD
		t.NetJPY += tx.NetJPY
	}
	return t
}

// AvailableYears is the union of calendar years present across the three
// derived collections' governing dates, sorted descending. With no data
// loaded it is the single current calendar year.
func AvailableYears(gains []models.CapitalGainTransaction, dividends []models.DividendTransaction, interest []models.InterestTransaction) []int {
	seen := make(map[int]bool)
	for _, tx := range gains {
		seen[tx.DateSold.Year()] = true
	}
	for _, tx := range dividends {
		seen[tx.Date.Year()] = true
	}
	for _, tx := range interest {
		seen[tx.Date.Year()] = true
	}
	if len(seen) == 0 {
		return []int{time.Now().Year()}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
