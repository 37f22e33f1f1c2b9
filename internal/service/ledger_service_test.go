package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollstock/internal/domain"
	"rollstock/internal/service"
	"rollstock/mocks"
)

func newLedgerService() (service.LedgerService, *mocks.MockCustomerRepo, *mocks.MockInvoiceRepo, *mocks.MockInvoiceArchiveRepo, *mocks.MockPaymentRepo, *mocks.MockOutstandingRepo) {
	customerRepo := new(mocks.MockCustomerRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	archiveRepo := new(mocks.MockInvoiceArchiveRepo)
	paymentRepo := new(mocks.MockPaymentRepo)
	outstandingRepo := new(mocks.MockOutstandingRepo)
	svc := service.NewLedgerService(customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo)
	return svc, customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo
}

func TestLedgerService_CustomerLedger(t *testing.T) {
	svc, customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo := newLedgerService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{
		ID:   customerID,
		Name: "Apex Films",
	}, nil)

	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// Opening balance: billed before the year start minus paid before it,
	// plus opening-outstanding balances.
	invoiceRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(1000.0, nil)
	archiveRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(500.0, nil)
	paymentRepo.On("SumAmountBefore", mock.Anything, customerID, start).Return(300.0, nil)
	outstandingRepo.On("SumBalanceByCustomer", mock.Anything, customerID).Return(200.0, nil)

	invoiceRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{
		{InvoiceNumber: "INV-10", InvoiceDate: start.AddDate(0, 0, 9), GrandTotal: 500},
	}, nil)
	archiveRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	paymentRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Payment{
		{Reference: "UTR-1", PaidAt: start.AddDate(0, 0, 14), Amount: 200},
	}, nil)

	ledger, err := svc.CustomerLedger(context.Background(), customerID, "2025-26")

	require.NoError(t, err)
	assert.Equal(t, "Apex Films", ledger.CustomerName)
	assert.Equal(t, "2025-26", ledger.FinancialYear)
	assert.Equal(t, 1400.0, ledger.OpeningBalance)

	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, domain.LedgerEntryInvoice, ledger.Entries[0].EntryType)
	assert.Equal(t, 1900.0, ledger.Entries[0].Balance)
	assert.Equal(t, domain.LedgerEntryPayment, ledger.Entries[1].EntryType)
	assert.Equal(t, 1700.0, ledger.Entries[1].Balance)

	assert.Equal(t, 500.0, ledger.TotalDebit)
	assert.Equal(t, 200.0, ledger.TotalCredit)
	assert.Equal(t, 1700.0, ledger.ClosingBalance)
}

func TestLedgerService_CustomerLedger_SameDayInvoiceBeforePayment(t *testing.T) {
	svc, customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo := newLedgerService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID, Name: "Apex"}, nil)

	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	day := start.AddDate(0, 0, 5)

	invoiceRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	archiveRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	paymentRepo.On("SumAmountBefore", mock.Anything, customerID, start).Return(0.0, nil)
	outstandingRepo.On("SumBalanceByCustomer", mock.Anything, customerID).Return(0.0, nil)

	invoiceRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{
		{InvoiceNumber: "INV-1", InvoiceDate: day, GrandTotal: 100},
	}, nil)
	archiveRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	paymentRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Payment{
		{Reference: "UTR-9", PaidAt: day, Amount: 100},
	}, nil)

	ledger, err := svc.CustomerLedger(context.Background(), customerID, "2025-26")

	require.NoError(t, err)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, domain.LedgerEntryInvoice, ledger.Entries[0].EntryType)
	assert.Equal(t, domain.LedgerEntryPayment, ledger.Entries[1].EntryType)
	assert.Equal(t, 0.0, ledger.ClosingBalance)
}

func TestLedgerService_CustomerLedger_OutstandingCarriedInvoiceCountedOnce(t *testing.T) {
	svc, customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo := newLedgerService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID, Name: "Apex"}, nil)

	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// An archived invoice with a 1000 grand total carries an opening
	// outstanding with a 600 balance. SumBilledBefore excludes invoices
	// that have an outstanding record, so the customer owes 600, not
	// 1600.
	invoiceRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	archiveRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	paymentRepo.On("SumAmountBefore", mock.Anything, customerID, start).Return(0.0, nil)
	outstandingRepo.On("SumBalanceByCustomer", mock.Anything, customerID).Return(600.0, nil)

	invoiceRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	archiveRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	paymentRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Payment{}, nil)

	ledger, err := svc.CustomerLedger(context.Background(), customerID, "2025-26")

	require.NoError(t, err)
	assert.Equal(t, 600.0, ledger.OpeningBalance)
	assert.Equal(t, 600.0, ledger.ClosingBalance)
}

func TestLedgerService_CustomerLedger_UnknownCustomer(t *testing.T) {
	svc, customerRepo, _, _, _, _ := newLedgerService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(nil, domain.ErrCustomerNotFound)

	_, err := svc.CustomerLedger(context.Background(), customerID, "current")

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLedgerService_ExportXLSX(t *testing.T) {
	svc, customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo := newLedgerService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID, Name: "Apex"}, nil)

	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	invoiceRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	archiveRepo.On("SumBilledBefore", mock.Anything, customerID, start).Return(0.0, nil)
	paymentRepo.On("SumAmountBefore", mock.Anything, customerID, start).Return(0.0, nil)
	outstandingRepo.On("SumBalanceByCustomer", mock.Anything, customerID).Return(0.0, nil)
	invoiceRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	archiveRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Invoice{}, nil)
	paymentRepo.On("ListByCustomerRange", mock.Anything, customerID, start, mock.Anything).Return([]domain.Payment{}, nil)

	data, filename, err := svc.ExportXLSX(context.Background(), customerID, "2025-26")

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "ledger_Apex_2025-26.xlsx", filename)
}
