// Package xlsxexport renders ledger views as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"rollstock/internal/domain"
)

const sheetName = "Ledger"

var headerRow = []string{"Date", "Type", "Reference", "Debit", "Credit", "Balance"}

// LedgerWorkbook renders a customer ledger into a single-sheet workbook
// and returns the serialized .xlsx bytes.
func LedgerWorkbook(ledger *domain.CustomerLedger) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.LedgerWorkbook: %w", err)
	}

	set := func(cell string, value interface{}) {
		_ = f.SetCellValue(sheetName, cell, value)
	}

	set("A1", ledger.CustomerName)
	set("A2", "Financial year "+ledger.FinancialYear)
	set("A3", fmt.Sprintf("%s to %s",
		ledger.StartDate.Format("02-01-2006"),
		ledger.EndDate.Format("02-01-2006")))
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)

	set("A5", "Opening balance")
	set("F5", ledger.OpeningBalance)

	const tableStart = 7
	for col, h := range headerRow {
		cell, _ := excelize.CoordinatesToCellName(col+1, tableStart)
		set(cell, h)
	}
	_ = f.SetCellStyle(sheetName, "A"+strconv.Itoa(tableStart), "F"+strconv.Itoa(tableStart), bold)

	row := tableStart + 1
	for _, e := range ledger.Entries {
		set("A"+strconv.Itoa(row), e.Date.Format("02-01-2006"))
		set("B"+strconv.Itoa(row), e.EntryType)
		set("C"+strconv.Itoa(row), e.Reference)
		set("D"+strconv.Itoa(row), e.Debit)
		set("E"+strconv.Itoa(row), e.Credit)
		set("F"+strconv.Itoa(row), e.Balance)
		row++
	}

	row++
	set("C"+strconv.Itoa(row), "Totals")
	set("D"+strconv.Itoa(row), ledger.TotalDebit)
	set("E"+strconv.Itoa(row), ledger.TotalCredit)
	row++
	set("C"+strconv.Itoa(row), "Closing balance")
	set("F"+strconv.Itoa(row), ledger.ClosingBalance)
	_ = f.SetCellStyle(sheetName, "C"+strconv.Itoa(row-1), "F"+strconv.Itoa(row), bold)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.LedgerWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}
