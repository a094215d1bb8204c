// Package sheets turns uploaded bytes (or a remote spreadsheet) into the
// uniform core.SheetTable representation and locates the logical datasets
// inside it.
package sheets

import (
	"context"

	"leadlens/internal/core"
)

// Source is a port for remote workbook providers: anything that can
// materialize a full SheetTable, such as the Google Sheets adapter.
type Source interface {
	Fetch(ctx context.Context) (core.SheetTable, error)
}
