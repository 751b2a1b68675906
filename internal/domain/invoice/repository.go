package invoice

import "context"

type InvoiceRepository interface {
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, inv Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
}

type InvoiceService interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	Get(ctx context.Context, id string) (InvoiceResponse, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter InvoiceFilter) (ListInvoicesResponse, error)
	MarkSent(ctx context.Context, id string) (InvoiceResponse, error)
	MarkPaid(ctx context.Context, id string) (InvoiceResponse, error)
}
