package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/INTeniola/monie-hackathon/internal/models"
)

func TestParseTransactions_ValidInput(t *testing.T) {
	input := "1,2024-01-10T09:00:00,[A:2|B:1],150.00\n" +
		"\n" +
		"2,2024-01-10T14:00,[A:3],300.50\n"

	txs, err := ParseTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTransactions() error = %v", err)
	}

	want := []models.Transaction{
		{
			StaffID:  1,
			Time:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			Products: []models.Product{{ID: "A", Quantity: 2}, {ID: "B", Quantity: 1}},
			Amount:   150.00,
		},
		{
			StaffID:  2,
			Time:     time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC),
			Products: []models.Product{{ID: "A", Quantity: 3}},
			Amount:   300.50,
		},
	}

	if diff := cmp.Diff(want, txs); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTransactions_PreservesLineOrder(t *testing.T) {
	input := "3,2024-01-11T10:00:00,[C:5],500.00\n" +
		"1,2024-01-10T09:00:00,[A:2],150.00\n"

	txs, err := ParseTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTransactions() error = %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}

	// No sorting or deduplication: input order is output order.
	if txs[0].StaffID != 3 || txs[1].StaffID != 1 {
		t.Errorf("line order not preserved: got staff ids %d, %d", txs[0].StaffID, txs[1].StaffID)
	}
}

func TestParseTransactions_EmptyProductList(t *testing.T) {
	txs, err := ParseTransactions(strings.NewReader("1,2024-01-10T09:00:00,[],150.00\n"))
	if err != nil {
		t.Fatalf("ParseTransactions() error = %v", err)
	}

	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if len(txs[0].Products) != 0 {
		t.Errorf("expected zero line items, got %d", len(txs[0].Products))
	}
}

func TestParseTransactions_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"blank lines only", "\n\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := ParseTransactions(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseTransactions() error = %v", err)
			}
			if len(txs) != 0 {
				t.Errorf("expected no transactions, got %d", len(txs))
			}
		})
	}
}

func TestParseTransactions_MalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1,2024-01-10T09:00:00,[A:2]"},
		{"too many fields", "1,2024-01-10T09:00:00,[A:2],150.00,extra"},
		{"bad staff id", "x,2024-01-10T09:00:00,[A:2],150.00"},
		{"bad timestamp", "1,10/01/2024 09:00,[A:2],150.00"},
		{"bad quantity", "1,2024-01-10T09:00:00,[A:x],150.00"},
		{"negative quantity", "1,2024-01-10T09:00:00,[A:-2],150.00"},
		{"missing quantity", "1,2024-01-10T09:00:00,[A],150.00"},
		{"bare product field", "1,2024-01-10T09:00:00,x,150.00"},
		{"bad amount", "1,2024-01-10T09:00:00,[A:2],abc"},
		{"negative amount", "1,2024-01-10T09:00:00,[A:2],-150.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransactions(strings.NewReader(tt.line + "\n"))
			if err == nil {
				t.Errorf("ParseTransactions(%q) should fail", tt.line)
			}
		})
	}
}

func TestParseTransactions_FailsWholeBatch(t *testing.T) {
	input := "1,2024-01-10T09:00:00,[A:2],150.00\n" +
		"garbage\n" +
		"2,2024-01-10T14:00:00,[B:1],300.00\n"

	txs, err := ParseTransactions(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for batch with a malformed line")
	}
	if txs != nil {
		t.Errorf("no partial output expected, got %d transactions", len(txs))
	}

	// The error names the offending line for the log entry.
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should identify line 2, got %q", err.Error())
	}
}
