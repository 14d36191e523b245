package repository

import (
	"context"
	"fmt"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/rowstore"
	"github.com/jack-T524/oms/pkg/mylogger"
	"go.uber.org/zap"
)

// Column order of the orders table. Fixed; the header row is written once on
// first use and never duplicated.
var orderHeader = []string{"Date", "Buyer", "Item", "Qty", "Price", "Status"}

const orderStatusColumn = 6

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Append(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, row int, status domain.OrderStatus) error
}

type orderRepo struct {
	store  rowstore.Store
	logger *zap.Logger
}

func NewOrderRepository(store rowstore.Store, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		store:  store,
		logger: logger,
	}
}

// List returns every data row of the orders table, carrying its 1-based row
// number so status updates can address it later. Row 1 is the header.
func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableOrders)
	if err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Failed to read orders table",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	orders := make([]domain.Order, 0, len(rows)-1)
	for i, row := range rows[1:] {
		orders = append(orders, domain.Order{
			Row:       i + 2,
			CreatedAt: cell(row, 0),
			Buyer:     cell(row, 1),
			Item:      cell(row, 2),
			Quantity:  cell(row, 3),
			UnitPrice: cell(row, 4),
			Status:    domain.OrderStatus(cell(row, 5)),
		})
	}

	return orders, nil
}

func (r *orderRepo) Append(ctx context.Context, order *domain.Order) error {
	if err := r.ensureHeader(ctx); err != nil {
		return err
	}

	cells := []string{
		order.CreatedAt,
		order.Buyer,
		order.Item,
		order.Quantity,
		order.UnitPrice,
		string(order.Status),
	}

	if err := r.store.AppendRow(ctx, rowstore.TableOrders, cells); err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Failed to append order row",
			zap.String("buyer", order.Buyer),
			zap.Error(err),
		)

		return fmt.Errorf("failed to append order: %w", err)
	}

	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, row int, status domain.OrderStatus) error {
	if row <= 1 {
		return ErrOrderNotFound
	}

	err := r.store.UpdateCell(ctx, rowstore.TableOrders, row, orderStatusColumn, string(status))
	if err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Failed to update order status",
			zap.Int("row", row),
			zap.String("status", string(status)),
			zap.Error(err),
		)

		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

func (r *orderRepo) ensureHeader(ctx context.Context) error {
	rows, err := r.store.ReadAll(ctx, rowstore.TableOrders)
	if err != nil {
		return fmt.Errorf("failed to read orders: %w", err)
	}

	if len(rows) > 0 {
		return nil
	}

	if err := r.store.AppendRow(ctx, rowstore.TableOrders, orderHeader); err != nil {
		return fmt.Errorf("failed to write orders header: %w", err)
	}

	return nil
}

// cell tolerates short rows; remote stores drop trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
