package service

import (
	"context"
	"testing"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/repository"
	"github.com/jack-T524/oms/internal/rowstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type consolidationFixture struct {
	store     *rowstore.MemoryStore
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	svc       ConsolidationService
}

func newConsolidationFixture(t *testing.T) *consolidationFixture {
	t.Helper()

	store := rowstore.NewMemoryStore()
	logger := zap.NewNop()
	orders := repository.NewOrderRepository(store, logger)
	customers := repository.NewCustomerRepository(store, logger)

	return &consolidationFixture{
		store:     store,
		orders:    orders,
		customers: customers,
		svc:       NewConsolidationService(orders, customers, logger),
	}
}

func (f *consolidationFixture) seedCustomer(t *testing.T, name, phone, address string) {
	t.Helper()
	require.NoError(t, f.customers.Upsert(context.Background(), &domain.Customer{
		Name:    name,
		Phone:   phone,
		Address: address,
	}))
}

func (f *consolidationFixture) seedOrder(t *testing.T, buyer, item, qty, price string, status domain.OrderStatus) {
	t.Helper()
	require.NoError(t, f.store.AppendRow(context.Background(), rowstore.TableOrders, []string{
		"2025-03-01 10:30", buyer, item, qty, price, string(status),
	}))
}

func (f *consolidationFixture) seedOrderHeader(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.AppendRow(context.Background(), rowstore.TableOrders, []string{
		"Date", "Buyer", "Item", "Qty", "Price", "Status",
	}))
}

func TestConsolidate_MergesOrdersOfOneBuyer(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedCustomer(t, "Wang", "0912345678", "Taipei")
	f.seedOrderHeader(t)
	f.seedOrder(t, "Wang", "Apple", "2", "500", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Banana", "1", "100", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 1)

	line := manifest.Lines[0]
	require.Equal(t, "Wang", line.Buyer)
	require.Equal(t, "0912345678", line.Phone)
	require.Equal(t, "Taipei", line.Address)
	require.Equal(t, "Apple(unit price $500 x2)、\nBanana(unit price $100 x1)", line.ItemDetail)
	require.Equal(t, int64(1100), line.Subtotal)
	require.Equal(t, int64(60), line.Fee)
	require.Equal(t, domain.FeeLabelIncluded, line.FeeLabel)
	require.Equal(t, int64(1160), line.GrandTotal)
	require.Equal(t, int64(1160), manifest.GrandTotal)
}

func TestConsolidate_FreeShippingAtThreshold(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedCustomer(t, "Wang", "0912", "Taipei")
	f.seedOrderHeader(t)
	f.seedOrder(t, "Wang", "TV", "1", "5000", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 1)
	require.Equal(t, int64(0), manifest.Lines[0].Fee)
	require.Equal(t, domain.FeeLabelFree, manifest.Lines[0].FeeLabel)
	require.Equal(t, int64(5000), manifest.Lines[0].GrandTotal)
}

func TestShippingFeeBoundary(t *testing.T) {
	tests := []struct {
		subtotal  int64
		wantFee   int64
		wantLabel string
	}{
		{subtotal: 3000, wantFee: 0, wantLabel: domain.FeeLabelFree},
		{subtotal: 2999, wantFee: 60, wantLabel: domain.FeeLabelIncluded},
		{subtotal: 3001, wantFee: 0, wantLabel: domain.FeeLabelFree},
		{subtotal: 0, wantFee: 60, wantLabel: domain.FeeLabelIncluded},
	}

	for _, tt := range tests {
		fee, label := domain.ShippingFee(tt.subtotal)
		require.Equal(t, tt.wantFee, fee, "subtotal %d", tt.subtotal)
		require.Equal(t, tt.wantLabel, label, "subtotal %d", tt.subtotal)
	}
}

func TestConsolidate_LinesFollowFirstAppearanceOrder(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedOrderHeader(t)
	f.seedCustomer(t, "Wang", "0911", "Taipei")
	f.seedCustomer(t, "Lee", "0933", "Tainan")

	f.seedOrder(t, "Wang", "Apple", "1", "500", domain.OrderStatusShippable)
	f.seedOrder(t, "Lee", "Banana", "1", "100", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Cherry", "1", "700", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 2)

	// Emergence order: Wang appeared first, Lee second.
	require.Equal(t, "Wang", manifest.Lines[0].Buyer)
	require.Equal(t, int64(1200), manifest.Lines[0].Subtotal)
	require.Equal(t, "Lee", manifest.Lines[1].Buyer)
	require.Equal(t, int64(100), manifest.Lines[1].Subtotal)
}

func TestConsolidate_DuplicateDirectoryNamesResolveToFirstRow(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedOrderHeader(t)

	// Same name, different contact rows. Seed the directory directly since
	// Upsert collapses duplicate names; rows like this only exist as legacy
	// data. The join picks the first directory row, same as the resolver's
	// linear scan, so both orders land in one shipment.
	ctx := context.Background()
	require.NoError(t, f.store.AppendRow(ctx, rowstore.TableCustomers, []string{"Name", "Phone", "Address"}))
	require.NoError(t, f.store.AppendRow(ctx, rowstore.TableCustomers, []string{"Wang", "0911", "Taipei"}))
	require.NoError(t, f.store.AppendRow(ctx, rowstore.TableCustomers, []string{"Wang", "0922", "Tainan"}))

	f.seedOrder(t, "Wang", "Apple", "1", "500", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Banana", "1", "100", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(ctx)
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 1)

	line := manifest.Lines[0]
	require.Equal(t, "Wang", line.Buyer)
	require.Equal(t, "0911", line.Phone)
	require.Equal(t, "Taipei", line.Address)
	require.Equal(t, int64(600), line.Subtotal)
}

func TestConsolidate_SkipsPendingAndUnresolvedOrders(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedCustomer(t, "Wang", "0912", "Taipei")
	f.seedCustomer(t, "Chen", "", "")
	f.seedOrderHeader(t)
	f.seedOrder(t, "Wang", "Apple", "1", "500", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Banana", "1", "100", domain.OrderStatusPendingInfo)
	f.seedOrder(t, "Ghost", "Cherry", "1", "700", domain.OrderStatusShippable)
	f.seedOrder(t, "Chen", "Durian", "1", "900", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 1)
	require.Equal(t, "Wang", manifest.Lines[0].Buyer)
	require.Equal(t, int64(500), manifest.Lines[0].Subtotal)
}

func TestConsolidate_MalformedNumericCellsDefault(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedCustomer(t, "Wang", "0912", "Taipei")
	f.seedOrderHeader(t)
	f.seedOrder(t, "Wang", "Apple", "abc", "not-a-price", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Banana", "-2", "500", domain.OrderStatusShippable)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Lines, 1)

	// Bad price defaults to 0, bad qty to 1; negatives fall back the same way.
	line := manifest.Lines[0]
	require.Equal(t, "Apple(unit price $0 x1)、\nBanana(unit price $500 x1)", line.ItemDetail)
	require.Equal(t, int64(500), line.Subtotal)
}

func TestConsolidate_EmptyTables(t *testing.T) {
	f := newConsolidationFixture(t)

	manifest, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	require.Empty(t, manifest.Lines)
	require.Zero(t, manifest.GrandTotal)
}

func TestConsolidate_IsIdempotent(t *testing.T) {
	f := newConsolidationFixture(t)
	f.seedCustomer(t, "Wang", "0912", "Taipei")
	f.seedOrderHeader(t)
	f.seedOrder(t, "Wang", "Apple", "2", "500", domain.OrderStatusShippable)
	f.seedOrder(t, "Wang", "Banana", "3", "800", domain.OrderStatusShippable)

	first, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)
	second, err := f.svc.Consolidate(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
}
