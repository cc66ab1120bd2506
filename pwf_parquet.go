//go:build !js

package pwf

import (
	"pwf/convert"
	"pwf/schema"
)

// PWFToParquet flattens a History document's time series into a columnar
// Parquet artifact. Not available on js builds.
func PWFToParquet(history *schema.History) (*convert.ParquetExportResult, error) {
	return convert.PWFToParquet(history)
}
