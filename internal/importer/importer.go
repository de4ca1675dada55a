// Package importer parses bank statement CSV exports into transaction
// create params. The expected layout is semicolon separated with a header
// of data;descricao;valor — dates as dd/mm/yyyy, values in European decimal
// format where a negative sign marks an expense.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/jfarias-dev/carteira/internal/encoding"
	"github.com/jfarias-dev/carteira/internal/transaction"
)

const (
	colDate  = "data"
	colDesc  = "descricao"
	colValue = "valor"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse reads a statement file and returns params for every row carrying a
// date, description and non-zero value. Footer and summary rows without a
// parseable date are skipped.
func (s *Service) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no statement header found: expected columns %s;%s;%s", colDate, colDesc, colValue)
	}

	var params []transaction.CreateParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based, for error messages

		date, ok := parseDate(cell(row, cols[colDate]))
		if !ok {
			continue
		}

		desc := cell(row, cols[colDesc])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		cents, err := parseAmount(cell(row, cols[colValue]))
		if err != nil || cents == 0 {
			continue
		}

		txType := transaction.TypeIncome
		if cents < 0 {
			txType = transaction.TypeExpense
			cents = -cents
		}

		params = append(params, transaction.CreateParams{
			Value:       cents,
			Type:        txType,
			Description: desc,
			CreatedAt:   date,
		})
	}

	return params, nil
}

// findHeader scans for the first row containing all expected column names,
// case-insensitively.
func findHeader(rows [][]string) (map[string]int, int, bool) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(row))

		for i, c := range row {
			name := strings.ToLower(strings.TrimSpace(c))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]
		_, hasDesc := cols[colDesc]
		_, hasValue := cols[colValue]

		if hasDate && hasDesc && hasValue {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseAmount converts a European-formatted value ("1.234,56", "-58,74")
// into signed cents.
func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
