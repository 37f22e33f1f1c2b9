package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rollstock/internal/analytics"
	"rollstock/internal/domain"
	"rollstock/internal/logger"
	"rollstock/internal/port"
	"rollstock/internal/xlsxexport"
)

// LedgerService builds per-customer fiscal-year ledgers spanning both
// invoice stores and the payment log.
type LedgerService interface {
	CustomerLedger(ctx context.Context, customerID uuid.UUID, yearToken string) (*domain.CustomerLedger, error)
	// ExportXLSX renders the ledger as an Excel workbook and returns the
	// bytes plus a suggested filename.
	ExportXLSX(ctx context.Context, customerID uuid.UUID, yearToken string) ([]byte, string, error)
}

type ledgerService struct {
	customerRepo    port.CustomerRepository
	invoiceRepo     port.InvoiceRepository
	archiveRepo     port.InvoiceArchiveRepository
	paymentRepo     port.PaymentRepository
	outstandingRepo port.OutstandingRepository
	log             zerolog.Logger
	now             func() time.Time
}

// NewLedgerService creates a new LedgerService implementation.
func NewLedgerService(
	customerRepo port.CustomerRepository,
	invoiceRepo port.InvoiceRepository,
	archiveRepo port.InvoiceArchiveRepository,
	paymentRepo port.PaymentRepository,
	outstandingRepo port.OutstandingRepository,
) LedgerService {
	return &ledgerService{
		customerRepo:    customerRepo,
		invoiceRepo:     invoiceRepo,
		archiveRepo:     archiveRepo,
		paymentRepo:     paymentRepo,
		outstandingRepo: outstandingRepo,
		log:             logger.WithComponent("ledger_service"),
		now:             time.Now,
	}
}

// CustomerLedger assembles the fiscal-year ledger: the opening balance is
// everything billed before the year start (live and archived invoices,
// plus opening-outstanding balances) minus everything paid before it.
// An invoice carried by an opening outstanding contributes only its
// outstanding balance, never its grand total as well.
// Invoices debit the running balance; payments credit it.
func (s *ledgerService) CustomerLedger(ctx context.Context, customerID uuid.UUID, yearToken string) (*domain.CustomerLedger, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	start, end := analytics.FiscalYearRange(yearToken, s.now().UTC())

	opening, err := s.openingBalance(ctx, customerID, start)
	if err != nil {
		return nil, err
	}

	entries, err := s.collectEntries(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}

	ledger := &domain.CustomerLedger{
		CustomerID:     customerID,
		CustomerName:   customer.Name,
		FinancialYear:  analytics.FiscalYearLabel(start),
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: analytics.Round2(opening),
		Entries:        entries,
	}

	balance := opening
	var totalDebit, totalCredit float64
	for i := range ledger.Entries {
		e := &ledger.Entries[i]
		totalDebit += e.Debit
		totalCredit += e.Credit
		balance += e.Debit - e.Credit
		e.Balance = analytics.Round2(balance)
	}
	ledger.TotalDebit = analytics.Round2(totalDebit)
	ledger.TotalCredit = analytics.Round2(totalCredit)
	ledger.ClosingBalance = analytics.Round2(balance)

	return ledger, nil
}

// openingBalance sums what the customer owed at the fiscal year start.
// The billed sums exclude invoices that have an opening-outstanding
// record; their unpaid remainder arrives via the outstanding balance,
// so counting the grand total too would double the debt.
func (s *ledgerService) openingBalance(ctx context.Context, customerID uuid.UUID, start time.Time) (float64, error) {
	liveBilled, err := s.invoiceRepo.SumBilledBefore(ctx, customerID, start)
	if err != nil {
		return 0, err
	}
	archivedBilled, err := s.archiveRepo.SumBilledBefore(ctx, customerID, start)
	if err != nil {
		return 0, err
	}
	paid, err := s.paymentRepo.SumAmountBefore(ctx, customerID, start)
	if err != nil {
		return 0, err
	}
	outstanding, err := s.outstandingRepo.SumBalanceByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return liveBilled + archivedBilled + outstanding - paid, nil
}

// collectEntries gathers in-year invoices (both stores) and payments,
// ordered by date with invoices before payments on the same day.
func (s *ledgerService) collectEntries(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.LedgerEntry, error) {
	live, err := s.invoiceRepo.ListByCustomerRange(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}
	archived, err := s.archiveRepo.ListByCustomerRange(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomerRange(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LedgerEntry, 0, len(live)+len(archived)+len(payments))
	for _, inv := range append(live, archived...) {
		entries = append(entries, domain.LedgerEntry{
			Date:      inv.InvoiceDate,
			EntryType: domain.LedgerEntryInvoice,
			Reference: inv.InvoiceNumber,
			Debit:     analytics.Round2(inv.GrandTotal),
		})
	}
	for _, p := range payments {
		ref := p.Reference
		if ref == "" {
			ref = p.Method
		}
		entries = append(entries, domain.LedgerEntry{
			Date:      p.PaidAt,
			EntryType: domain.LedgerEntryPayment,
			Reference: ref,
			Credit:    analytics.Round2(p.Amount),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].EntryType == domain.LedgerEntryInvoice &&
			entries[j].EntryType == domain.LedgerEntryPayment
	})
	return entries, nil
}

func (s *ledgerService) ExportXLSX(ctx context.Context, customerID uuid.UUID, yearToken string) ([]byte, string, error) {
	ledger, err := s.CustomerLedger(ctx, customerID, yearToken)
	if err != nil {
		return nil, "", err
	}

	data, err := xlsxexport.LedgerWorkbook(ledger)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ledger_%s_%s.xlsx", ledger.CustomerName, ledger.FinancialYear)
	s.log.Info().
		Str("customer_id", customerID.String()).
		Str("financial_year", ledger.FinancialYear).
		Int("entries", len(ledger.Entries)).
		Msg("ledger exported")
	return data, filename, nil
}
