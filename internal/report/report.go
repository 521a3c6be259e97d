// Package report summarizes a loaded galaxy database.
package report

import (
	"context"
	"fmt"

	"github.com/wrenholt/galaxydb/internal/store"
)

// Summary holds the row counts of a loaded database.
type Summary struct {
	Tables  []store.TableCount
	Systems []store.SystemCount
}

// Build collects a Summary from the store.
func Build(ctx context.Context, st store.Store) (*Summary, error) {
	tables, err := st.TableCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}
	systems, err := st.SystemBodyCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count systems: %w", err)
	}
	return &Summary{Tables: tables, Systems: systems}, nil
}
