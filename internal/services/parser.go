package services

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/INTeniola/monie-hackathon/internal/models"
)

const (
	lineFieldCount = 4

	timeLayoutSeconds = "2006-01-02T15:04:05"
	timeLayoutMinutes = "2006-01-02T15:04"
)

// ParseTransactions converts the raw content of one transaction file into an
// ordered slice of transactions, one per non-blank line. The format carries
// no escaping, so a literal ',' or '|' inside a product id corrupts the line.
// The first malformed line fails the whole batch.
func ParseTransactions(r io.Reader) ([]models.Transaction, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024) // 10MB max line

	var txs []models.Transaction
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tx, err := parseTransactionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return txs, nil
}

func parseTransactionLine(line string) (models.Transaction, error) {
	fields := strings.Split(line, ",")
	if len(fields) != lineFieldCount {
		return models.Transaction{}, fmt.Errorf("expected %d fields, got %d", lineFieldCount, len(fields))
	}

	staffID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("staff id: %w", err)
	}

	ts, err := parseTimestamp(strings.TrimSpace(fields[1]))
	if err != nil {
		return models.Transaction{}, err
	}

	products, err := parseProducts(strings.TrimSpace(fields[2]))
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	if amount < 0 {
		return models.Transaction{}, fmt.Errorf("amount: negative value %v", amount)
	}

	return models.Transaction{
		StaffID:  staffID,
		Time:     ts,
		Products: products,
		Amount:   amount,
	}, nil
}

// parseTimestamp accepts timestamps with or without a seconds component,
// matching the granularities seen in upstream transaction files.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(timeLayoutSeconds, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(timeLayoutMinutes, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return ts, nil
}

// parseProducts strips the delimiting characters off the product list field
// and splits the remainder into id:quantity pairs. An empty list is a
// degenerate transaction, not an error.
func parseProducts(field string) ([]models.Product, error) {
	if len(field) < 2 {
		return nil, fmt.Errorf("product list %q: missing delimiters", field)
	}
	inner := field[1 : len(field)-1]
	if inner == "" {
		return nil, nil
	}

	pairs := strings.Split(inner, "|")
	products := make([]models.Product, 0, len(pairs))
	for _, pair := range pairs {
		id, qty, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("product entry %q: missing quantity", pair)
		}
		quantity, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("product %s quantity: %w", id, err)
		}
		if quantity < 0 {
			return nil, fmt.Errorf("product %s quantity: negative value %d", id, quantity)
		}
		products = append(products, models.Product{ID: id, Quantity: quantity})
	}
	return products, nil
}
