// Package statement parses uploaded bank statements in CSV form and
// computes summary figures for the dashboard.
package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/optifin/optifin/internal/models"
	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned when a statement is missing required
// columns or contains a non-numeric amount.
var ErrMalformedInput = errors.New("malformed statement")

// required header columns, case-insensitive; "category" is optional.
var requiredColumns = []string{"date", "description", "amount"}

// Parse reads a CSV bank statement. The first row must be a header
// containing at least date, description, and amount columns.
func Parse(r io.Reader) ([]models.StatementRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedInput)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedInput, name)
		}
	}

	var rows []models.StatementRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[cols["amount"]]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: amount is not numeric", ErrMalformedInput, line)
		}

		row := models.StatementRow{
			Date:        strings.TrimSpace(record[cols["date"]]),
			Description: strings.TrimSpace(record[cols["description"]]),
			Amount:      amount,
		}
		if i, ok := cols["category"]; ok && i < len(record) {
			row.Category = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Summary aggregates a parsed statement.
type Summary struct {
	// Income is the sum of positive amounts.
	Income decimal.Decimal `json:"income"`
	// Expenses is the sum of negative amounts, as a positive figure.
	Expenses decimal.Decimal `json:"expenses"`
	// Net is income minus expenses.
	Net decimal.Decimal `json:"net"`
	// ByCategory sums amounts per category; uncategorized rows fall
	// under "other".
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

// Summarize computes totals over the given rows.
func Summarize(rows []models.StatementRow) Summary {
	s := Summary{
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Net:        decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, row := range rows {
		if row.Amount.IsNegative() {
			s.Expenses = s.Expenses.Add(row.Amount.Neg())
		} else {
			s.Income = s.Income.Add(row.Amount)
		}

		category := row.Category
		if category == "" {
			category = "other"
		}
		s.ByCategory[category] = s.ByCategory[category].Add(row.Amount)
	}
	s.Net = s.Income.Sub(s.Expenses)
	return s
}
