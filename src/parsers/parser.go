package parsers

import (
	"errors"
	"io"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
)

// Classification failure modes. Each maps to a distinct user-facing
// message; none are fatal, the caller may retry with a different file.
var (
	ErrEmptyFile      = errors.New("file is empty")
	ErrHeaderNotFound = errors.New("header row not found")
	ErrUnknownSchema  = errors.New("unrecognized file format")
	ErrNoDataRows     = errors.New("no data rows found")
	ErrParsingFailed  = errors.New("failed to parse delimited data")
)

// ParsedFile is the classified and filtered content of one upload. Exactly
// one of the two shapes is populated, per the detected schema: GainLoss for
// a realized gain/loss export, Dividends+Interest for a history export.
type ParsedFile struct {
	Schema    models.Schema
	GainLoss  []models.GainLossRow
	Dividends []models.HistoryRow
	Interest  []models.HistoryRow
}

// Parser is the narrow interface the upload service consumes.
type Parser interface {
	Parse(file io.Reader) (*ParsedFile, error)
}

// NewFirstradeParser returns the parser for Firstrade CSV exports.
func NewFirstradeParser() Parser {
	return &firstradeParser{}
}
