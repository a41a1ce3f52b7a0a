package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/models"
)

type firstradeParser struct{}

// DetectSchema classifies a raw header line by its content. A line
// mentioning "sales proceeds" is a realized gain/loss export; one carrying
// both "action" and "amount" is a unified history export.
func DetectSchema(headerLine string) models.Schema {
	lower := strings.ToLower(headerLine)
	if strings.Contains(lower, "sales proceeds") {
		return models.SchemaGainLoss
	}
	if strings.Contains(lower, "action") && strings.Contains(lower, "amount") {
		return models.SchemaHistory
	}
	return models.SchemaUnknown
}

func (p *firstradeParser) Parse(file io.Reader) (*ParsedFile, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	lines := splitNonEmptyLines(string(data))
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	// Export files carry preamble lines (account info, date range) before
	// the real header. The header is the first line starting with the word
	// "symbol", optionally quoted.
	headerIdx := -1
	for i, line := range lines {
		trimmed := strings.TrimLeft(strings.ToLower(line), `" `)
		if strings.HasPrefix(trimmed, "symbol") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrHeaderNotFound
	}

	schema := DetectSchema(lines[headerIdx])

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	if len(records) == 0 {
		return nil, ErrNoDataRows
	}

	fields := indexFields(records[0])

	// Secondary heuristic: the raw header line may defeat the substring
	// check (odd spacing, quoting). Recover the classification from the
	// parsed field names before giving up.
	if schema == models.SchemaUnknown {
		if _, ok := fields["sales proceeds"]; ok {
			schema = models.SchemaGainLoss
		} else if _, ok := fields["action"]; ok {
			schema = models.SchemaHistory
		} else {
			return nil, ErrUnknownSchema
		}
	}

	switch schema {
	case models.SchemaGainLoss:
		return parseGainLossRecords(records[1:], fields)
	default:
		return parseHistoryRecords(records[1:], fields)
	}
}

func parseGainLossRecords(records [][]string, fields map[string]int) (*ParsedFile, error) {
	var rows []models.GainLossRow
	for _, rec := range records {
		symbol := strings.TrimSpace(field(rec, fields, "symbol"))
		// Export files append summary/subtotal rows that must not be
		// treated as transactions.
		if symbol == "" || strings.HasPrefix(symbol, "Total") {
			continue
		}
		rows = append(rows, models.GainLossRow{
			Symbol:             symbol,
			Description:        field(rec, fields, "description"),
			Quantity:           field(rec, fields, "quantity"),
			DateAcquired:       field(rec, fields, "date acquired"),
			DateSold:           field(rec, fields, "date sold"),
			SalesProceeds:      field(rec, fields, "sales proceeds"),
			AdjustedCost:       field(rec, fields, "adjust cost", "adjusted cost"),
			WashSaleDisallowed: field(rec, fields, "ws loss disallowed"),
			WashSaleFlag:       strings.TrimSpace(field(rec, fields, "wash sales", "wash sale")),
		})
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}
	return &ParsedFile{Schema: models.SchemaGainLoss, GainLoss: rows}, nil
}

func parseHistoryRecords(records [][]string, fields map[string]int) (*ParsedFile, error) {
	var dividends, interest []models.HistoryRow
	dropped := 0
	for _, rec := range records {
		row := models.HistoryRow{
			Symbol:      strings.TrimSpace(field(rec, fields, "symbol")),
			Action:      strings.TrimSpace(field(rec, fields, "action")),
			Description: field(rec, fields, "description"),
			TradeDate:   strings.TrimSpace(field(rec, fields, "tradedate", "trade date")),
			Amount:      field(rec, fields, "amount"),
		}
		switch {
		case strings.EqualFold(row.Action, "Dividend"):
			dividends = append(dividends, row)
		case strings.EqualFold(row.Action, "Interest"):
			interest = append(interest, row)
		default:
			// Buys, sells, transfers and the like share the history
			// export but are out of scope here.
			dropped++
		}
	}
	if dropped > 0 && logger.L != nil {
		logger.L.Debug("Dropped history rows with out-of-scope actions", "count", dropped)
	}
	if len(dividends) == 0 && len(interest) == 0 {
		return nil, ErrNoDataRows
	}
	return &ParsedFile{Schema: models.SchemaHistory, Dividends: dividends, Interest: interest}, nil
}

func splitNonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// indexFields maps normalized header names to their column positions.
func indexFields(header []string) map[string]int {
	fields := make(map[string]int, len(header))
	for i, name := range header {
		fields[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return fields
}

// field returns the record value for the first matching column name, or ""
// when the column is absent or the record is short.
func field(record []string, fields map[string]int, names ...string) string {
	for _, name := range names {
		if idx, ok := fields[name]; ok && idx < len(record) {
			return record[idx]
		}
	}
	return ""
}
