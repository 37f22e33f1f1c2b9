package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrProductNotFound         = errors.New("product not found")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrOutstandingNotFound     = errors.New("opening outstanding not found")
	ErrValidation              = errors.New("validation failed")
	ErrDuplicateInvoiceNumber  = errors.New("invoice number already exists")
	ErrDuplicateCustomer       = errors.New("customer name or GSTIN already exists")
	ErrDuplicateOutstanding    = errors.New("opening outstanding already recorded for this invoice")
	ErrArchivedInvoiceReadOnly = errors.New("archived invoices are read-only")
	ErrInvoiceAlreadyArchived  = errors.New("invoice is already archived")
	ErrInvalidPaymentAmount    = errors.New("payment amount must be greater than zero")
	ErrInvalidAdjustedAmount   = errors.New("adjusted amount cannot be negative")
)
