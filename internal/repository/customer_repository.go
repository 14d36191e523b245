package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/rowstore"
	"github.com/jack-T524/oms/pkg/mylogger"
	"go.uber.org/zap"
)

var customerHeader = []string{"Name", "Phone", "Address"}

const (
	customerPhoneColumn   = 2
	customerAddressColumn = 3
)

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
	Upsert(ctx context.Context, customer *domain.Customer) error
}

type customerRepo struct {
	store  rowstore.Store
	logger *zap.Logger
}

func NewCustomerRepository(store rowstore.Store, logger *zap.Logger) CustomerRepository {
	return &customerRepo{
		store:  store,
		logger: logger,
	}
}

func (r *customerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableCustomers)
	if err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Failed to read customers table",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	customers := make([]domain.Customer, 0, len(rows)-1)
	for i, row := range rows[1:] {
		customers = append(customers, domain.Customer{
			Row:     i + 2,
			Name:    cell(row, 0),
			Phone:   cell(row, 1),
			Address: cell(row, 2),
		})
	}

	return customers, nil
}

// FindByName scans the directory top to bottom and returns the first row whose
// name matches exactly. Case-sensitive, no trimming. The directory is small
// enough that a linear scan per lookup is fine.
func (r *customerRepo) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	customers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range customers {
		if customers[i].Name == name {
			return &customers[i], nil
		}
	}

	return nil, ErrCustomerNotFound
}

// Upsert updates the first row matching the customer's name in place, or
// appends a new row when the name is absent. Names act as a unique key with
// last-write-wins semantics; records are never deleted.
func (r *customerRepo) Upsert(ctx context.Context, customer *domain.Customer) error {
	existing, err := r.FindByName(ctx, customer.Name)
	if err == nil {
		if err := r.store.UpdateCell(ctx, rowstore.TableCustomers, existing.Row, customerPhoneColumn, customer.Phone); err != nil {
			return fmt.Errorf("failed to update customer phone: %w", err)
		}
		if err := r.store.UpdateCell(ctx, rowstore.TableCustomers, existing.Row, customerAddressColumn, customer.Address); err != nil {
			return fmt.Errorf("failed to update customer address: %w", err)
		}

		customer.Row = existing.Row
		return nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return err
	}

	if err := r.ensureHeader(ctx); err != nil {
		return err
	}

	cells := []string{customer.Name, customer.Phone, customer.Address}
	if err := r.store.AppendRow(ctx, rowstore.TableCustomers, cells); err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Failed to append customer row",
			zap.String("name", customer.Name),
			zap.Error(err),
		)

		return fmt.Errorf("failed to append customer: %w", err)
	}

	return nil
}

func (r *customerRepo) ensureHeader(ctx context.Context) error {
	rows, err := r.store.ReadAll(ctx, rowstore.TableCustomers)
	if err != nil {
		return fmt.Errorf("failed to read customers: %w", err)
	}

	if len(rows) > 0 {
		return nil
	}

	if err := r.store.AppendRow(ctx, rowstore.TableCustomers, customerHeader); err != nil {
		return fmt.Errorf("failed to write customers header: %w", err)
	}

	return nil
}
