package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wrenholt/galaxydb/internal/galaxy"
)

// pgStore implements Store over a native pgx connection.
type pgStore struct {
	conn *pgx.Conn
}

var (
	_ Store = (*pgStore)(nil)
	_ Tx    = (*pgTx)(nil)
)

func openPostgres(ctx context.Context, connString string) (Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &pgStore{conn: conn}, nil
}

func (s *pgStore) InstallSchema(ctx context.Context, ddl string) error {
	// Exec without arguments uses the simple protocol, which accepts a
	// multi-statement script.
	if _, err := s.conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to install schema: %w", err)
	}
	return nil
}

func (s *pgStore) DefaultSchema() string {
	return postgresSchema
}

func (s *pgStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &pgTx{tx: tx}, nil
}

func (s *pgStore) TableCounts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(galaxyTables))
	for _, table := range galaxyTables {
		var rows int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := s.conn.QueryRow(ctx, query).Scan(&rows); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: rows})
	}
	return counts, nil
}

func (s *pgStore) SystemBodyCounts(ctx context.Context) ([]SystemCount, error) {
	rows, err := s.conn.Query(ctx, "SELECT name, body_count FROM systems ORDER BY name")
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

func (s *pgStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
	}
	return err
}

func (t *pgTx) InsertResource(ctx context.Context, r galaxy.Resource) error {
	return t.exec(ctx,
		`INSERT INTO resources (resource, short_name, rarity, type, mass, value, value_to_mass)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.Name, r.ShortName, r.Rarity, r.Type, r.Mass, r.Value, r.ValueToMass)
}

func (t *pgTx) InsertSystem(ctx context.Context, name string, bodyCount int) error {
	return t.exec(ctx, `INSERT INTO systems (name, body_count) VALUES ($1, $2)`, name, bodyCount)
}

func (t *pgTx) InsertBody(ctx context.Context, b galaxy.Body) error {
	return t.exec(ctx,
		`INSERT INTO bodies (system, name, type, gravity, temperature, atmosphere,
		                     magnetosphere, water, fauna, flora, hab_rank, planet_length)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.System, b.Name, b.Type, b.Gravity, b.Temperature, b.Atmosphere,
		b.Magnetosphere, b.Water, b.Fauna, b.Flora, b.HabRank, b.PlanetLength)
}

func (t *pgTx) InsertTrait(ctx context.Context, system, body, trait string) error {
	return t.exec(ctx, `INSERT INTO traits (system, body, trait) VALUES ($1, $2, $3)`, system, body, trait)
}

func (t *pgTx) InsertBodyResource(ctx context.Context, system, body, resource string) error {
	return t.exec(ctx, `INSERT INTO body_resources (system, body, resource) VALUES ($1, $2, $3)`, system, body, resource)
}

func (t *pgTx) InsertOrganic(ctx context.Context, system, body string, organic galaxy.OrganicResource, domesticable bool) error {
	return t.exec(ctx,
		`INSERT INTO body_organics (system, body, organism, resource, domesticable) VALUES ($1, $2, $3, $4, $5)`,
		system, body, organic.Name, organic.Resource, domesticable)
}

func (t *pgTx) InsertBiome(ctx context.Context, system, body string, biome galaxy.Biome) error {
	return t.exec(ctx,
		`INSERT INTO biomes (system, body, biome, coverage) VALUES ($1, $2, $3, $4)`,
		system, body, biome.Name, biome.Coverage)
}

func (t *pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
