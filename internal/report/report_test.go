package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenholt/galaxydb/internal/store"
)

// countStore serves canned counts.
type countStore struct {
	tables  []store.TableCount
	systems []store.SystemCount
}

func (c *countStore) InstallSchema(context.Context, string) error { return nil }
func (c *countStore) DefaultSchema() string                       { return "" }
func (c *countStore) Begin(context.Context) (store.Tx, error)     { return nil, nil }
func (c *countStore) Close(context.Context) error                 { return nil }

func (c *countStore) TableCounts(context.Context) ([]store.TableCount, error) {
	return c.tables, nil
}

func (c *countStore) SystemBodyCounts(context.Context) ([]store.SystemCount, error) {
	return c.systems, nil
}

func testSummary(t *testing.T) *Summary {
	t.Helper()
	st := &countStore{
		tables: []store.TableCount{
			{Table: "resources", Rows: 12},
			{Table: "systems", Rows: 2},
			{Table: "bodies", Rows: 5},
		},
		systems: []store.SystemCount{
			{System: "Alpha Centauri", Bodies: 3},
			{System: "Sol", Bodies: 2},
		},
	}
	s, err := Build(context.Background(), st)
	require.NoError(t, err)
	return s
}

func TestTextFormat(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, NewTextFormatter(&buf).Format(testSummary(t)))

	want := `TABLES
  resources: 12
  systems: 2
  bodies: 5

SYSTEMS
  Alpha Centauri: 3 bodies
  Sol: 2 bodies
`
	assert.Equal(t, want, buf.String())
}

func TestMarkdownFormat(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, NewMarkdownFormatter(&buf).Format(testSummary(t)))

	out := buf.String()
	for _, line := range []string{
		"# Galaxy Database",
		"| Table | Rows |",
		"| resources | 12 |",
		"## Systems",
		"| Sol | 2 |",
	} {
		assert.Contains(t, out, line)
	}
}

func TestTextFormatNoSystems(t *testing.T) {
	var buf strings.Builder
	s := &Summary{Tables: []store.TableCount{{Table: "resources", Rows: 0}}}
	require.NoError(t, NewTextFormatter(&buf).Format(s))
	assert.NotContains(t, buf.String(), "SYSTEMS", "empty systems section should be omitted")
}
