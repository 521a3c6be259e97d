package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wrenholt/galaxydb/internal/galaxy"
)

// galaxyTables lists every table of the schema, parents before children.
var galaxyTables = []string{
	"resources",
	"systems",
	"bodies",
	"traits",
	"body_resources",
	"body_organics",
	"biomes",
}

// sqlStore implements Store over database/sql for the engines that use ?
// placeholders (SQLite and MySQL). isDuplicate recognizes the engine's
// uniqueness violation.
type sqlStore struct {
	db          *sql.DB
	schema      string
	isDuplicate func(error) bool
}

var (
	_ Store = (*sqlStore)(nil)
	_ Tx    = (*sqlTx)(nil)
)

func (s *sqlStore) InstallSchema(ctx context.Context, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to install schema: %w", err)
	}
	return nil
}

func (s *sqlStore) DefaultSchema() string {
	return s.schema
}

func (s *sqlStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqlTx{tx: tx, isDuplicate: s.isDuplicate}, nil
}

func (s *sqlStore) TableCounts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(galaxyTables))
	for _, table := range galaxyTables {
		var rows int64
		// table names are fixed, never derived from input
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&rows); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: rows})
	}
	return counts, nil
}

func (s *sqlStore) SystemBodyCounts(ctx context.Context) ([]SystemCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, body_count FROM systems ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer rows.Close()

	var counts []SystemCount
	for rows.Next() {
		var c SystemCount
		if err := rows.Scan(&c.System, &c.Bodies); err != nil {
			return nil, fmt.Errorf("failed to scan system row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *sqlStore) Close(context.Context) error {
	return s.db.Close()
}

type sqlTx struct {
	tx          *sql.Tx
	isDuplicate func(error) bool
}

func (t *sqlTx) exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil && t.isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (t *sqlTx) InsertResource(ctx context.Context, r galaxy.Resource) error {
	return t.exec(ctx,
		`INSERT INTO resources (resource, short_name, rarity, type, mass, value, value_to_mass)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.ShortName, r.Rarity, r.Type, r.Mass, r.Value, r.ValueToMass)
}

func (t *sqlTx) InsertSystem(ctx context.Context, name string, bodyCount int) error {
	return t.exec(ctx, `INSERT INTO systems (name, body_count) VALUES (?, ?)`, name, bodyCount)
}

func (t *sqlTx) InsertBody(ctx context.Context, b galaxy.Body) error {
	return t.exec(ctx,
		`INSERT INTO bodies (system, name, type, gravity, temperature, atmosphere,
		                     magnetosphere, water, fauna, flora, hab_rank, planet_length)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.System, b.Name, b.Type, b.Gravity, b.Temperature, b.Atmosphere,
		b.Magnetosphere, b.Water, b.Fauna, b.Flora, b.HabRank, b.PlanetLength)
}

func (t *sqlTx) InsertTrait(ctx context.Context, system, body, trait string) error {
	return t.exec(ctx, `INSERT INTO traits (system, body, trait) VALUES (?, ?, ?)`, system, body, trait)
}

func (t *sqlTx) InsertBodyResource(ctx context.Context, system, body, resource string) error {
	return t.exec(ctx, `INSERT INTO body_resources (system, body, resource) VALUES (?, ?, ?)`, system, body, resource)
}

func (t *sqlTx) InsertOrganic(ctx context.Context, system, body string, organic galaxy.OrganicResource, domesticable bool) error {
	return t.exec(ctx,
		`INSERT INTO body_organics (system, body, organism, resource, domesticable) VALUES (?, ?, ?, ?, ?)`,
		system, body, organic.Name, organic.Resource, domesticable)
}

func (t *sqlTx) InsertBiome(ctx context.Context, system, body string, biome galaxy.Biome) error {
	return t.exec(ctx,
		`INSERT INTO biomes (system, body, biome, coverage) VALUES (?, ?, ?, ?)`,
		system, body, biome.Name, biome.Coverage)
}

func (t *sqlTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback(context.Context) error {
	return t.tx.Rollback()
}
