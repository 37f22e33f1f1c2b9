package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rollstock/internal/domain"
	"rollstock/internal/xlsxexport"
)

func TestLedgerWorkbook(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	ledger := &domain.CustomerLedger{
		CustomerID:     uuid.New(),
		CustomerName:   "Apex Films",
		FinancialYear:  "2025-26",
		StartDate:      start,
		EndDate:        time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC),
		OpeningBalance: 1400,
		Entries: []domain.LedgerEntry{
			{Date: start.AddDate(0, 0, 9), EntryType: domain.LedgerEntryInvoice, Reference: "INV-10", Debit: 500, Balance: 1900},
			{Date: start.AddDate(0, 0, 14), EntryType: domain.LedgerEntryPayment, Reference: "UTR-1", Credit: 200, Balance: 1700},
		},
		TotalDebit:     500,
		TotalCredit:    200,
		ClosingBalance: 1700,
	}

	data, err := xlsxexport.LedgerWorkbook(ledger)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	name, err := f.GetCellValue("Ledger", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Apex Films", name)

	ref, err := f.GetCellValue("Ledger", "C8")
	require.NoError(t, err)
	assert.Equal(t, "INV-10", ref)

	debit, err := f.GetCellValue("Ledger", "D8")
	require.NoError(t, err)
	assert.Equal(t, "500", debit)

	closing, err := f.GetCellValue("Ledger", "F12")
	require.NoError(t, err)
	assert.Equal(t, "1700", closing)
}
