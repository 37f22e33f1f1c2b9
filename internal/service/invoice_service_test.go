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

func newInvoiceService() (service.InvoiceService, *mocks.MockInvoiceRepo, *mocks.MockInvoiceArchiveRepo, *mocks.MockPaymentRepo, *mocks.MockCustomerRepo) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	archiveRepo := new(mocks.MockInvoiceArchiveRepo)
	paymentRepo := new(mocks.MockPaymentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewInvoiceService(invoiceRepo, archiveRepo, paymentRepo, customerRepo)
	return svc, invoiceRepo, archiveRepo, paymentRepo, customerRepo
}

func TestInvoiceService_Create_ComputesTotals(t *testing.T) {
	svc, invoiceRepo, _, _, customerRepo := newInvoiceService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv := &domain.Invoice{
		InvoiceNumber: "INV-100",
		CustomerID:    customerID,
		LineItems:     domain.LineItems{{Width: 100, Quantity: 5, UnitPrice: 200, TotalPrice: 1000}},
		TotalAmount:   1000,
		CGST:          90,
		SGST:          90,
		OtherCharges:  20,
		PaidAmount:    200,
	}
	err := svc.Create(context.Background(), inv)

	require.NoError(t, err)
	assert.Equal(t, 1200.0, inv.GrandTotal)
	assert.Equal(t, 1000.0, inv.PendingAmount)
	assert.Equal(t, domain.PaymentPartial, inv.PaymentStatus)
	assert.NotEqual(t, uuid.Nil, inv.ID)
	assert.False(t, inv.InvoiceDate.IsZero())
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_RequiresLineItems(t *testing.T) {
	svc, _, _, _, _ := newInvoiceService()

	err := svc.Create(context.Background(), &domain.Invoice{
		InvoiceNumber: "INV-100",
		CustomerID:    uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceService_Create_UnknownCustomer(t *testing.T) {
	svc, _, _, _, customerRepo := newInvoiceService()

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(nil, domain.ErrCustomerNotFound)

	err := svc.Create(context.Background(), &domain.Invoice{
		InvoiceNumber: "INV-100",
		CustomerID:    customerID,
		LineItems:     domain.LineItems{{Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestInvoiceService_FindAnywhere_ArchiveFallback(t *testing.T) {
	svc, invoiceRepo, archiveRepo, _, _ := newInvoiceService()

	id := uuid.New()
	archived := &domain.Invoice{ID: id, InvoiceNumber: "OLD-001"}
	invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)
	archiveRepo.On("GetByID", mock.Anything, id).Return(archived, nil)

	inv, fromArchive, err := svc.FindAnywhere(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, fromArchive)
	assert.Equal(t, archived, inv)
}

func TestInvoiceService_FindAnywhere_LiveWins(t *testing.T) {
	svc, invoiceRepo, archiveRepo, _, _ := newInvoiceService()

	id := uuid.New()
	live := &domain.Invoice{ID: id}
	invoiceRepo.On("GetByID", mock.Anything, id).Return(live, nil)

	inv, fromArchive, err := svc.FindAnywhere(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, fromArchive)
	assert.Equal(t, live, inv)
	archiveRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestInvoiceService_AllocatePayment_RecomputesStatus(t *testing.T) {
	svc, invoiceRepo, _, paymentRepo, _ := newInvoiceService()

	id := uuid.New()
	inv := &domain.Invoice{
		ID:            id,
		CustomerID:    uuid.New(),
		GrandTotal:    1000,
		PaidAmount:    400,
		PendingAmount: 600,
		PaymentStatus: domain.PaymentPartial,
	}
	invoiceRepo.On("GetByID", mock.Anything, id).Return(inv, nil)
	invoiceRepo.On("UpdatePayment", mock.Anything, inv).Return(nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	updated, err := svc.AllocatePayment(context.Background(), id, service.PaymentInput{
		Amount: 600,
		Method: "neft",
		PaidAt: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.PaidAmount)
	assert.Equal(t, 0.0, updated.PendingAmount)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	paymentRepo.AssertExpectations(t)
}

func TestInvoiceService_AllocatePayment_Overpayment(t *testing.T) {
	svc, invoiceRepo, _, paymentRepo, _ := newInvoiceService()

	id := uuid.New()
	inv := &domain.Invoice{ID: id, GrandTotal: 1000, PaidAmount: 900, PendingAmount: 100}
	invoiceRepo.On("GetByID", mock.Anything, id).Return(inv, nil)
	invoiceRepo.On("UpdatePayment", mock.Anything, inv).Return(nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	updated, err := svc.AllocatePayment(context.Background(), id, service.PaymentInput{Amount: 300})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentOverpaid, updated.PaymentStatus)
	assert.Equal(t, -200.0, updated.PendingAmount)
}

func TestInvoiceService_AllocatePayment_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _, _ := newInvoiceService()

	for _, amount := range []float64{0, -50} {
		_, err := svc.AllocatePayment(context.Background(), uuid.New(), service.PaymentInput{Amount: amount})
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
	}
}

func TestInvoiceService_AllocatePayment_ArchivedIsReadOnly(t *testing.T) {
	svc, invoiceRepo, archiveRepo, _, _ := newInvoiceService()

	id := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)
	archiveRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id}, nil)

	_, err := svc.AllocatePayment(context.Background(), id, service.PaymentInput{Amount: 100})

	assert.ErrorIs(t, err, domain.ErrArchivedInvoiceReadOnly)
}

func TestInvoiceService_Archive_MovesInvoice(t *testing.T) {
	svc, invoiceRepo, archiveRepo, _, _ := newInvoiceService()

	id := uuid.New()
	inv := &domain.Invoice{ID: id, InvoiceNumber: "INV-7"}
	invoiceRepo.On("GetByID", mock.Anything, id).Return(inv, nil)
	archiveRepo.On("Insert", mock.Anything, inv).Return(nil)
	invoiceRepo.On("Delete", mock.Anything, id).Return(nil)

	archived, err := svc.Archive(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, inv, archived)
	archiveRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Archive_AlreadyArchived(t *testing.T) {
	svc, invoiceRepo, archiveRepo, _, _ := newInvoiceService()

	id := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)
	archiveRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id}, nil)

	_, err := svc.Archive(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyArchived)
}
