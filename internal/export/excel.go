// Package export writes directory listings to spreadsheets.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/logging"
)

// SheetName is the worksheet the listings are written to.
const SheetName = "Businesses"

var headers = []any{
	"ID", "Name", "Category", "Location", "Phone",
	"Latitude", "Longitude", "Distance (km)", "Direction",
}

// WriteBusinesses writes listings, in the given order, to a new .xlsx file
// at path. Unknown coordinates and distances are left blank.
func WriteBusinesses(path string, listings []directory.Listing) (err error) {
	f := excelize.NewFile()
	defer logging.HandleDeferredError(&err, f.Close, slog.Default(), "close_excel_file")

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, l := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
		if err := sw.SetRow(cell, listingRow(l)); err != nil {
			return fmt.Errorf("export: write business %d: %w", l.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %q: %w", path, err)
	}
	return nil
}

func listingRow(l directory.Listing) []any {
	row := []any{l.ID, l.Name, l.Category, l.Location, l.Phone, nil, nil, nil, l.Direction}
	if l.Latitude != nil && l.Longitude != nil {
		row[5], row[6] = *l.Latitude, *l.Longitude
	}
	if l.DistanceKm != nil {
		row[7] = *l.DistanceKm
	}
	return row
}
