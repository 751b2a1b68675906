package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

// LineItem is a priced position on an invoice. Quantities are free-unit
// (hours, pieces, kilometers); Total is Quantity * UnitPrice, fixed when
// the item is written.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// LineItems is stored as a JSONB column.
type LineItems []LineItem

// Value implements driver.Valuer for database storage
func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return nil, nil
	}
	return json.Marshal(li)
}

// Scan implements sql.Scanner for database retrieval
func (li *LineItems) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LineItems: invalid type")
	}

	return json.Unmarshal(bytes, li)
}

// Sum returns the total amount over all line items.
func (li LineItems) Sum() float64 {
	var sum float64
	for _, item := range li {
		sum += item.Total
	}
	return sum
}

// Invoice entity
type Invoice struct {
	ID            string
	InvoiceNumber string
	CreatedBy     string
	ClientName    string
	ClientAddress *string

	IssueDate time.Time
	DueDate   time.Time

	LineItems   LineItems
	TotalAmount float64

	Status Status
	SentAt *time.Time
	PaidAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	CreatorName *string
}
