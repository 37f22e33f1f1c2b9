package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Customer represents a buyer the company trades with.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product represents a sellable material (a film grade).
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	HSNCode     string    `db:"hsn_code" json:"hsn_code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is one physical roll sold within an invoice. It is embedded in
// the invoice's line_items JSONB column, not stored as its own row.
type LineItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	RollID      string    `json:"roll_id"`
	Width       float64   `json:"width"`
	NetWeight   float64   `json:"net_weight"`
	GrossWeight float64   `json:"gross_weight"`
	Micron      float64   `json:"micron"`
	Mtr         float64   `json:"mtr"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	// TotalPrice is trusted as stored; it is never recomputed from
	// quantity * unit_price downstream.
	TotalPrice float64 `json:"total_price"`
}

// LineItems is the JSONB-backed list of line items on an invoice.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = LineItems{}
		return nil
	default:
		return fmt.Errorf("unsupported type %T for LineItems", src)
	}
}

// Invoice is the central entity: one sale to one customer, with an
// ordered list of embedded line items and payment-tracking fields.
// Invariant: GrandTotal = TotalAmount + CGST + SGST + IGST + OtherCharges,
// computed at creation and not re-validated afterwards.
type Invoice struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	CustomerID    uuid.UUID     `db:"customer_id" json:"customer_id"`
	InvoiceDate   time.Time     `db:"invoice_date" json:"invoice_date"`
	LineItems     LineItems     `db:"line_items" json:"line_items"`
	TotalAmount   float64       `db:"total_amount" json:"total_amount"`
	CGST          float64       `db:"cgst" json:"cgst"`
	SGST          float64       `db:"sgst" json:"sgst"`
	IGST          float64       `db:"igst" json:"igst"`
	OtherCharges  float64       `db:"other_charges" json:"other_charges"`
	GrandTotal    float64       `db:"grand_total" json:"grand_total"`
	PaidAmount    float64       `db:"paid_amount" json:"paid_amount"`
	PendingAmount float64       `db:"pending_amount" json:"pending_amount"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// ComputeGrandTotal applies the creation-time total invariant.
func (i *Invoice) ComputeGrandTotal() {
	i.GrandTotal = i.TotalAmount + i.CGST + i.SGST + i.IGST + i.OtherCharges
}

// OpeningOutstanding records pre-cutover customer debt against an
// archived invoice. One per invoice, mutated only via AdjustedAmount.
type OpeningOutstanding struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	InvoiceID            uuid.UUID `db:"invoice_id" json:"invoice_id"`
	InvoiceNumber        string    `db:"invoice_number" json:"invoice_number"`
	InvoiceDate          time.Time `db:"invoice_date" json:"invoice_date"`
	CustomerID           uuid.UUID `db:"customer_id" json:"customer_id"`
	OpeningPendingAmount float64   `db:"opening_pending_amount" json:"opening_pending_amount"`
	AdjustedAmount       float64   `db:"adjusted_amount" json:"adjusted_amount"`
	BalancePending       float64   `db:"balance_pending" json:"balance_pending"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// RecomputeBalance derives BalancePending from the other two amounts.
func (o *OpeningOutstanding) RecomputeBalance() {
	o.BalancePending = o.OpeningPendingAmount - o.AdjustedAmount
}

// Payment is one allocation of money against a live invoice.
type Payment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	InvoiceID  uuid.UUID `db:"invoice_id" json:"invoice_id"`
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`
	Amount     float64   `db:"amount" json:"amount"`
	Method     string    `db:"method" json:"method"`
	Reference  string    `db:"reference" json:"reference"`
	PaidAt     time.Time `db:"paid_at" json:"paid_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// PendingInvoice is the common shape both reconciler sources normalize
// into: live invoices with money owed and opening-outstanding entries.
type PendingInvoice struct {
	InvoiceID     uuid.UUID     `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	TotalAmount   float64       `json:"total_amount"`
	PaidAmount    float64       `json:"paid_amount"`
	PendingAmount float64       `json:"pending_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Type          PendingType   `json:"type"`
}

// PendingSummary totals each reconciler source separately and combined.
// All three figures are rounded to 2 decimals independently.
type PendingSummary struct {
	TotalCurrentPending     float64 `json:"total_current_pending"`
	TotalOpeningOutstanding float64 `json:"total_opening_outstanding"`
	TotalPending            float64 `json:"total_pending"`
	InvoiceCount            int     `json:"invoice_count"`
}

// LedgerEntry is one dated row in a customer's fiscal-year ledger.
type LedgerEntry struct {
	Date      time.Time `json:"date"`
	EntryType string    `json:"entry_type"` // invoice | payment
	Reference string    `json:"reference"`
	Debit     float64   `json:"debit"`
	Credit    float64   `json:"credit"`
	Balance   float64   `json:"balance"`
}

// CustomerLedger is the fiscal-year ledger view for one customer,
// spanning the live and archived invoice stores.
type CustomerLedger struct {
	CustomerID     uuid.UUID     `json:"customer_id"`
	CustomerName   string        `json:"customer_name"`
	FinancialYear  string        `json:"financial_year"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	OpeningBalance float64       `json:"opening_balance"`
	Entries        []LedgerEntry `json:"entries"`
	TotalDebit     float64       `json:"total_debit"`
	TotalCredit    float64       `json:"total_credit"`
	ClosingBalance float64       `json:"closing_balance"`
}
