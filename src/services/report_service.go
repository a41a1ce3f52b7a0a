package services

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// BuildReport renders the year-filtered summary as a printable Markdown
// document carrying the same figures as the interactive views.
func BuildReport(s *models.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investment Income Summary - Tax Year %d", s.Year))
	doc.PlainText(fmt.Sprintf("USD amounts converted to JPY with daily USD/JPY rates (%d observations loaded).", s.RateCount))

	doc.H2("Capital Gains by Symbol")
	if len(s.SymbolGroups) == 0 {
		doc.PlainText("No realized sales in this year.")
	} else {
		rows := make([][]string, 0, len(s.SymbolGroups)+1)
		for _, g := range s.SymbolGroups {
			rows = append(rows, []string{
				g.Symbol,
				usd(g.ProceedsUSD),
				usd(g.CostUSD),
				jpy(g.ProceedsJPY),
				jpy(g.CostJPY),
				jpy(g.GainLossJPY),
			})
		}
		t := s.CapitalGainTotals
		rows = append(rows, []string{
			"Total", usd(t.ProceedsUSD), usd(t.CostUSD),
			jpy(t.ProceedsJPY), jpy(t.CostJPY), jpy(t.GainLossJPY),
		})
		doc.Table(md.TableSet{
			Header: []string{"Symbol", "Proceeds (USD)", "Cost (USD)", "Proceeds (JPY)", "Cost (JPY)", "Gain/Loss (JPY)"},
			Rows:   rows,
		})
		doc.PlainText(fmt.Sprintf("%d sale(s).", t.Count))
	}

	doc.H2("Dividends")
	if len(s.Dividends) == 0 {
		doc.PlainText("No dividends in this year.")
	} else {
		rows := make([][]string, 0, len(s.Dividends)+1)
		for _, tx := range s.Dividends {
			rows = append(rows, []string{
				tx.Symbol,
				tx.Date.Format(utils.ISODateFormat),
				usd(tx.GrossUSD),
				usd(tx.TaxUSD),
				jpy(tx.GrossJPY),
				jpy(tx.TaxJPY),
				jpy(tx.NetJPY),
			})
		}
		t := s.DividendTotals
		rows = append(rows, []string{
			"Total", "", usd(t.GrossUSD), usd(t.TaxUSD),
			jpy(t.GrossJPY), jpy(t.TaxJPY), jpy(t.NetJPY),
		})
		doc.Table(md.TableSet{
			Header: []string{"Symbol", "Date", "Gross (USD)", "Tax (USD)", "Gross (JPY)", "Tax (JPY)", "Net (JPY)"},
			Rows:   rows,
		})
		doc.PlainText(fmt.Sprintf("%d dividend payment(s).", t.Count))
	}

	doc.H2("Interest")
	if len(s.Interest) == 0 {
		doc.PlainText("No interest in this year.")
	} else {
		rows := make([][]string, 0, len(s.Interest)+1)
		for _, tx := range s.Interest {
			rows = append(rows, []string{
				tx.Symbol,
				tx.Date.Format(utils.ISODateFormat),
				usd(tx.NetUSD),
				jpy(tx.NetJPY),
			})
		}
		t := s.InterestTotals
		rows = append(rows, []string{"Total", "", usd(t.NetUSD), jpy(t.NetJPY)})
		doc.Table(md.TableSet{
			Header: []string{"Symbol", "Date", "Net (USD)", "Net (JPY)"},
			Rows:   rows,
		})
		doc.PlainText(fmt.Sprintf("%d interest payment(s).", t.Count))
	}

	return doc.String()
}
