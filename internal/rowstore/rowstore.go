// Package rowstore defines the tabular store the application persists into:
// two named tables of text cells, a header row plus data rows, addressable by
// 1-based position. The contract is append and update-cell only, no deletes
// and no transactions; the header row is row 1 once the application writes it.
package rowstore

import (
	"context"
	"errors"
)

type Table string

const (
	TableOrders    Table = "orders"
	TableCustomers Table = "customers"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrCellNotFound = errors.New("cell out of range")
	ErrStoreOffline = errors.New("row store unreachable")
)

// Store is the injected persistence handle. Implementations must keep row
// order stable: ReadAll returns rows in insertion order and AppendRow is
// atomic per call. UpdateCell addresses cells with 1-based row and column
// numbers where the header occupies row 1.
type Store interface {
	ReadAll(ctx context.Context, table Table) ([][]string, error)
	AppendRow(ctx context.Context, table Table, cells []string) error
	UpdateCell(ctx context.Context, table Table, row, col int, value string) error
}
