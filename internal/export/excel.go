// Package export renders a consolidated manifest into a downloadable
// spreadsheet file.
package export

import (
	"fmt"
	"time"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Shipments"

var manifestHeader = []interface{}{
	"Buyer", "Phone", "Address", "Items", "Subtotal", "Shipping Fee", "Fee Label", "Grand Total",
}

// WriteManifest renders the manifest into a single-sheet xlsx: a header row,
// one row per consolidated shipment in manifest order, and a trailing summary
// row with the sum of all grand totals. An empty manifest still produces a
// valid header-only file.
func WriteManifest(manifest *domain.Manifest) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &manifestHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, line := range manifest.Lines {
		row := []interface{}{
			line.Buyer,
			line.Phone,
			line.Address,
			line.ItemDetail,
			line.Subtotal,
			line.Fee,
			line.FeeLabel,
			line.GrandTotal,
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(manifest.Lines) > 0 {
		summary := []interface{}{"Total", "", "", "", "", "", "", manifest.GrandTotal}
		cell := fmt.Sprintf("A%d", len(manifest.Lines)+2)
		if err := f.SetSheetRow(sheetName, cell, &summary); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename names the download after the day it was produced, e.g.
// shipments_20250301.xlsx.
func Filename(now time.Time) string {
	return fmt.Sprintf("shipments_%s.xlsx", now.Format("20060102"))
}
