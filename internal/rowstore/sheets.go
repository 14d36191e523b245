package rowstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jack-T524/oms/pkg/mylogger"
	"github.com/jack-T524/oms/pkg/utils"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore persists into a Google spreadsheet with one worksheet per
// table (tabs "Orders" and "Customers"), matching the store contract: every
// cell is text, rows append in order, cells update by 1-based position.
//
// Remote calls go through a circuit breaker so a dead spreadsheet fails fast
// instead of hanging each action; failures still surface synchronously and
// nothing is retried.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	cb            *gobreaker.CircuitBreaker
	logger        *zap.Logger
}

func NewSheetsStore(ctx context.Context, credentialsFile, spreadsheetID string, logger *zap.Logger) (*SheetsStore, error) {
	svc, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheets client: %w", err)
	}

	settings := gobreaker.Settings{
		Name:        "SheetsStore",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(
				"Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		cb:            gobreaker.NewCircuitBreaker(settings),
		logger:        logger,
	}, nil
}

func (s *SheetsStore) ReadAll(ctx context.Context, table Table) ([][]string, error) {
	title, err := sheetTitle(table)
	if err != nil {
		return nil, err
	}

	resp, err := utils.ExecuteWithBreaker[*sheets.ValueRange](s.cb, func() (*sheets.ValueRange, error) {
		return s.svc.Spreadsheets.Values.Get(s.spreadsheetID, title).Context(ctx).Do()
	})
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to read sheet",
			zap.String("sheet", title),
			zap.Error(err),
		)

		return nil, fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *SheetsStore) AppendRow(ctx context.Context, table Table, cells []string) error {
	title, err := sheetTitle(table)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
	}

	_, err = utils.ExecuteWithBreaker[*sheets.AppendValuesResponse](s.cb, func() (*sheets.AppendValuesResponse, error) {
		return s.svc.Spreadsheets.Values.
			Append(s.spreadsheetID, title, &sheets.ValueRange{Values: [][]interface{}{values}}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
	})
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to append row",
			zap.String("sheet", title),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}

	return nil
}

func (s *SheetsStore) UpdateCell(ctx context.Context, table Table, row, col int, value string) error {
	title, err := sheetTitle(table)
	if err != nil {
		return err
	}
	if row < 1 || col < 1 {
		return ErrCellNotFound
	}

	cellRange := fmt.Sprintf("%s!%s%d", title, columnLetter(col), row)

	_, err = utils.ExecuteWithBreaker[*sheets.UpdateValuesResponse](s.cb, func() (*sheets.UpdateValuesResponse, error) {
		return s.svc.Spreadsheets.Values.
			Update(s.spreadsheetID, cellRange, &sheets.ValueRange{Values: [][]interface{}{{value}}}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
	})
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to update cell",
			zap.String("range", cellRange),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %v", ErrStoreOffline, err)
	}

	return nil
}

func sheetTitle(table Table) (string, error) {
	switch table {
	case TableOrders:
		return "Orders", nil
	case TableCustomers:
		return "Customers", nil
	default:
		return "", ErrUnknownTable
	}
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
