package rowstore

import (
	"context"
	"fmt"

	"github.com/jack-T524/oms/pkg/mylogger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps the same sheet-shaped contract in a single postgres
// table: one record per row, cells held as a text array so the schema stays
// free-form like the spreadsheet it mirrors. Row numbers are 1-based and
// allocated on append, never reused.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}
}

func (s *PostgresStore) ReadAll(ctx context.Context, table Table) ([][]string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := `
		SELECT cells
		FROM sheet_rows
		WHERE table_name = $1
		ORDER BY row_num;
	`

	rows, err := s.pool.Query(ctx, query, string(table))
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to query sheet_rows",
			zap.String("table", string(table)),
			zap.Error(err),
		)

		return nil, fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			mylogger.Error(
				ctx,
				s.logger,
				"Failed to scan row",
				zap.Error(err),
			)

			return nil, err
		}

		result = append(result, cells)
	}

	if err := rows.Err(); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Rows error",
			zap.Error(err),
		)

		return nil, err
	}

	return result, nil
}

func (s *PostgresStore) AppendRow(ctx context.Context, table Table, cells []string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	query := `
		INSERT INTO sheet_rows (table_name, row_num, cells)
		SELECT $1, COALESCE((SELECT MAX(row_num) FROM sheet_rows WHERE table_name = $1), 0) + 1, $2;
	`

	if _, err := s.pool.Exec(ctx, query, string(table), cells); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to append row",
			zap.String("table", string(table)),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}

	return nil
}

func (s *PostgresStore) UpdateCell(ctx context.Context, table Table, row, col int, value string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if row < 1 || col < 1 {
		return ErrCellNotFound
	}

	// Postgres arrays are 1-based, so the column number maps straight through.
	query := `
		UPDATE sheet_rows
		SET cells[$1] = $2
		WHERE table_name = $3 AND row_num = $4 AND cardinality(cells) >= $1;
	`

	commandTag, err := s.pool.Exec(ctx, query, col, value, string(table), row)
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to update cell",
			zap.String("table", string(table)),
			zap.Int("row", row),
			zap.Int("col", col),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCellNotFound
	}

	return nil
}

func checkTable(table Table) error {
	switch table {
	case TableOrders, TableCustomers:
		return nil
	default:
		return ErrUnknownTable
	}
}
