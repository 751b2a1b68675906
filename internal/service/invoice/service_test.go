package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/invoice"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices map[string]invoice.Invoice
	deleted  []string
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	inv.ID = "inv-new"
	f.invoices[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, inv invoice.Invoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	delete(f.invoices, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "admin-1"))
	require.NoError(t, tok.Set("role", string(user.RoleAdmin)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newService(invoices ...invoice.Invoice) (*fakeInvoiceRepo, invoice.InvoiceService) {
	repo := &fakeInvoiceRepo{invoices: map[string]invoice.Invoice{}}
	for _, inv := range invoices {
		repo.invoices[inv.ID] = inv
	}
	return repo, NewInvoiceService(repo)
}

func draftInvoice() invoice.Invoice {
	return invoice.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-20240304-ABCD1234",
		CreatedBy:     "admin-1",
		ClientName:    "Acme Builders",
		IssueDate:     time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC),
		LineItems:     invoice.LineItems{{Description: "Labor", Quantity: 10, UnitPrice: 80, Total: 800}},
		TotalAmount:   800,
		Status:        invoice.StatusDraft,
	}
}

func TestInvoiceService_Create_ComputesTotals(t *testing.T) {
	repo, svc := newService()
	ctx := adminContext(t)

	resp, err := svc.Create(ctx, invoice.CreateInvoiceRequest{
		ClientName: "Acme Builders",
		IssueDate:  "2024-03-04",
		DueDate:    "2024-04-03",
		LineItems: []invoice.LineItemRequest{
			{Description: "Labor", Quantity: 10, UnitPrice: 80},
			{Description: "Concrete", Quantity: 3, Unit: "m3", UnitPrice: 120.5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(invoice.StatusDraft), resp.Status)
	assert.True(t, strings.HasPrefix(resp.InvoiceNumber, "INV-20240304-"))
	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, 800.0, resp.LineItems[0].Total)
	assert.Equal(t, 361.5, resp.LineItems[1].Total)
	assert.Equal(t, 1161.5, resp.TotalAmount)
	assert.Equal(t, "admin-1", repo.invoices["inv-new"].CreatedBy)
}

func TestInvoiceService_StatusTransitions(t *testing.T) {
	repo, svc := newService(draftInvoice())
	ctx := adminContext(t)

	// Paying a draft is not allowed.
	_, err := svc.MarkPaid(ctx, "inv-1")
	assert.ErrorIs(t, err, invoice.ErrInvoiceNotSent)

	resp, err := svc.MarkSent(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, string(invoice.StatusSent), resp.Status)
	assert.NotNil(t, repo.invoices["inv-1"].SentAt)

	// Sending twice is rejected.
	_, err = svc.MarkSent(ctx, "inv-1")
	assert.ErrorIs(t, err, invoice.ErrInvoiceNotDraft)

	resp, err = svc.MarkPaid(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, string(invoice.StatusPaid), resp.Status)
	assert.NotNil(t, repo.invoices["inv-1"].PaidAt)

	// A paid invoice is final.
	_, err = svc.MarkSent(ctx, "inv-1")
	assert.ErrorIs(t, err, invoice.ErrInvoiceAlreadyPaid)
	_, err = svc.MarkPaid(ctx, "inv-1")
	assert.ErrorIs(t, err, invoice.ErrInvoiceAlreadyPaid)
}

func TestInvoiceService_Update_DraftOnly(t *testing.T) {
	sent := draftInvoice()
	sent.Status = invoice.StatusSent
	_, svc := newService(sent)
	ctx := adminContext(t)

	name := "Renamed Client"
	_, err := svc.Update(ctx, invoice.UpdateInvoiceRequest{ID: "inv-1", ClientName: &name})
	assert.ErrorIs(t, err, invoice.ErrInvoiceNotDraft)
}

func TestInvoiceService_Delete_DraftOnly(t *testing.T) {
	repo, svc := newService(draftInvoice())
	ctx := adminContext(t)

	require.NoError(t, svc.Delete(ctx, "inv-1"))
	assert.Equal(t, []string{"inv-1"}, repo.deleted)

	paid := draftInvoice()
	paid.Status = invoice.StatusPaid
	repo.invoices["inv-1"] = paid
	assert.ErrorIs(t, svc.Delete(ctx, "inv-1"), invoice.ErrInvoiceNotDraft)
}

func TestInvoiceService_AdminOnly(t *testing.T) {
	_, svc := newService(draftInvoice())

	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", string(user.RoleEmployee)))
	ctx := jwtauth.NewContext(context.Background(), tok, nil)

	_, err := svc.MarkSent(ctx, "inv-1")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}
