package repository

import (
	"context"
	"testing"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/rowstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCustomerRepo(t *testing.T) (CustomerRepository, *rowstore.MemoryStore) {
	t.Helper()
	store := rowstore.NewMemoryStore()
	return NewCustomerRepository(store, zap.NewNop()), store
}

func TestCustomerRepository_FindByName(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCustomerRepo(t)

	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "王大明", Phone: "0912345678", Address: "台北市信義區"}))

	found, err := repo.FindByName(ctx, "王大明")
	require.NoError(t, err)
	require.Equal(t, "0912345678", found.Phone)
	require.Equal(t, "台北市信義區", found.Address)
	require.True(t, found.HasContactInfo())
}

func TestCustomerRepository_FindByNameNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCustomerRepo(t)

	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "Wang", Phone: "0912", Address: "Taipei"}))

	_, err := repo.FindByName(ctx, "wang")
	require.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = repo.FindByName(ctx, "Wang ")
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerRepository_FindByNameReturnsFirstMatch(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemoryStore()
	repo := NewCustomerRepository(store, zap.NewNop())

	// Seed duplicate names directly; Upsert would have collapsed them.
	require.NoError(t, store.AppendRow(ctx, rowstore.TableCustomers, []string{"Name", "Phone", "Address"}))
	require.NoError(t, store.AppendRow(ctx, rowstore.TableCustomers, []string{"Wang", "0911", "Taipei"}))
	require.NoError(t, store.AppendRow(ctx, rowstore.TableCustomers, []string{"Wang", "0922", "Tainan"}))

	found, err := repo.FindByName(ctx, "Wang")
	require.NoError(t, err)
	require.Equal(t, "0911", found.Phone)
}

func TestCustomerRepository_UpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	repo, store := newCustomerRepo(t)

	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "Wang", Phone: "0911", Address: "Taipei"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "Wang", Phone: "0922", Address: "Tainan"}))

	rows, err := store.ReadAll(ctx, rowstore.TableCustomers)
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one data row, last write wins

	found, err := repo.FindByName(ctx, "Wang")
	require.NoError(t, err)
	require.Equal(t, "0922", found.Phone)
	require.Equal(t, "Tainan", found.Address)
}

func TestCustomerRepository_UpsertWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	repo, store := newCustomerRepo(t)

	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "Wang", Phone: "0911", Address: "Taipei"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Customer{Name: "Lee", Phone: "0933", Address: "Kaohsiung"}))

	rows, err := store.ReadAll(ctx, rowstore.TableCustomers)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Name", "Phone", "Address"}, rows[0])
}

func TestCustomerRepository_ListEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCustomerRepo(t)

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, customers)
}
