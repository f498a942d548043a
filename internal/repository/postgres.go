package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// PostgresConfig holds connection pool settings.
type PostgresConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPostgresConfig returns pool settings suited to a small service.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// OpenPostgres opens and pings a PostgreSQL connection pool.
func OpenPostgres(ctx context.Context, dsn string, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func setupGoose() error {
	goose.SetBaseFS(migrationsFS)
	return goose.SetDialect("postgres")
}

// MigrateUp applies all pending schema migrations.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, migrationsDir)
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, migrationsDir)
}

// MigrationStatus logs the state of every migration.
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, migrationsDir)
}

// Row priorities of the pricing_config table: the base row carries the base
// rate and tier limit, the extra row the rate beyond the limit.
const (
	priorityBase  = 1
	priorityExtra = 2
)

var (
	printTypes = map[model.ColorMode]string{model.Monochrome: "BW", model.Color: "COLOR"}
	sideTypes  = map[model.DuplexMode]string{model.SingleSided: "SINGLE", model.DoubleSided: "DOUBLE"}
)

func colorModeFromPrintType(s string) (model.ColorMode, bool) {
	for m, v := range printTypes {
		if v == s {
			return m, true
		}
	}
	return "", false
}

func duplexModeFromSideType(s string) (model.DuplexMode, bool) {
	for m, v := range sideTypes {
		if v == s {
			return m, true
		}
	}
	return "", false
}

// pricingRow is one row of pricing_config.
type pricingRow struct {
	ConfigID  string
	Version   int
	Active    bool
	PrintType string
	SideType  string
	Priority  int
	TierLimit sql.NullInt64
	Rate      decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostgresPricingRepository stores pricing as rate rows, two per cell and
// version.
type PostgresPricingRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresPricingRepository creates a repository over db. The schema
// must have been migrated with MigrateUp.
func NewPostgresPricingRepository(db *sql.DB) *PostgresPricingRepository {
	return &PostgresPricingRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const selectPricingRows = `SELECT config_id, version, active, print_type, side_type, priority, tier_limit, rate, created_by, created_at, updated_at
FROM pricing_config`

func (r *PostgresPricingRepository) GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error) {
	rows, err := r.query(ctx, selectPricingRows+` WHERE owner_id = $1 AND active ORDER BY version DESC, priority`, ownerID)
	if err != nil {
		return nil, err
	}
	records, err := foldPricingRows(ownerID, rows)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func (r *PostgresPricingRepository) List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error) {
	var lim interface{}
	if limit > 0 {
		lim = limit
	}
	rows, err := r.query(ctx, selectPricingRows+`
WHERE owner_id = $1 AND version IN (
	SELECT DISTINCT version FROM pricing_config WHERE owner_id = $1 ORDER BY version DESC LIMIT $2
)
ORDER BY version DESC, priority`, ownerID, lim)
	if err != nil {
		return nil, err
	}
	return foldPricingRows(ownerID, rows)
}

func (r *PostgresPricingRepository) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error) {
	if cfg.Len() == 0 {
		return nil, fmt.Errorf("%w: empty pricing configuration", model.ErrInvalidArgument)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialise writers per owner so version numbers stay gapless.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, ownerID); err != nil {
		return nil, fmt.Errorf("lock owner pricing: %w", err)
	}

	var version int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM pricing_config WHERE owner_id = $1`, ownerID,
	).Scan(&version); err != nil {
		return nil, fmt.Errorf("next pricing version: %w", err)
	}

	now := r.now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE pricing_config SET active = FALSE, updated_at = $2 WHERE owner_id = $1 AND active`, ownerID, now,
	); err != nil {
		return nil, fmt.Errorf("deactivate pricing: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pricing_config
(config_id, owner_id, version, active, print_type, side_type, priority, tier_limit, rate, created_by, created_at, updated_at)
VALUES ($1, $2, $3, TRUE, $4, $5, $6, $7, $8, $9, $10, $10)`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = stmt.Close()
	}()

	configID := uuid.NewString()
	for _, cell := range cfg.Cells() {
		pt, st := printTypes[cell.ColorMode], sideTypes[cell.DuplexMode]
		if _, err := stmt.ExecContext(ctx, configID, ownerID, version, pt, st,
			priorityBase, int64(cell.BaseLimit), cell.BasePrice, createdBy, now); err != nil {
			return nil, fmt.Errorf("insert base rate for %s: %w", cell.Key(), err)
		}
		if _, err := stmt.ExecContext(ctx, configID, ownerID, version, pt, st,
			priorityExtra, nil, cell.ExtraPrice, createdBy, now); err != nil {
			return nil, fmt.Errorf("insert extra rate for %s: %w", cell.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &PricingConfigRecord{
		ID:            configID,
		OwnerID:       ownerID,
		Configuration: cfg,
		Active:        true,
		Version:       version,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     createdBy,
	}, nil
}

func (r *PostgresPricingRepository) query(ctx context.Context, q string, args ...interface{}) ([]pricingRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []pricingRow
	for rows.Next() {
		var row pricingRow
		if err := rows.Scan(&row.ConfigID, &row.Version, &row.Active, &row.PrintType, &row.SideType,
			&row.Priority, &row.TierLimit, &row.Rate, &row.CreatedBy, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// foldPricingRows groups rows by version, preserving row order. A cell with
// only one of its two rows takes the other fields from the built-in default.
func foldPricingRows(ownerID string, rows []pricingRow) ([]PricingConfigRecord, error) {
	defaults := model.DefaultPricingConfiguration()

	var records []PricingConfigRecord
	tiers := map[int]map[model.TierKey]model.PricingTier{}

	for _, row := range rows {
		color, ok := colorModeFromPrintType(row.PrintType)
		if !ok {
			return nil, fmt.Errorf("pricing_config: unknown print_type %q", row.PrintType)
		}
		duplex, ok := duplexModeFromSideType(row.SideType)
		if !ok {
			return nil, fmt.Errorf("pricing_config: unknown side_type %q", row.SideType)
		}

		cells, seen := tiers[row.Version]
		if !seen {
			cells = map[model.TierKey]model.PricingTier{}
			tiers[row.Version] = cells
			records = append(records, PricingConfigRecord{
				ID:        row.ConfigID,
				OwnerID:   ownerID,
				Active:    row.Active,
				Version:   row.Version,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
				CreatedBy: row.CreatedBy,
			})
		}

		key := model.TierKey{Color: color, Duplex: duplex}
		tier, ok := cells[key]
		if !ok {
			tier, _ = defaults.Tier(key)
		}
		switch row.Priority {
		case priorityBase:
			// A NULL limit reads as 0.
			tier.BasePrice = row.Rate
			tier.BaseLimit = int(row.TierLimit.Int64)
		case priorityExtra:
			tier.ExtraPrice = row.Rate
		default:
			return nil, fmt.Errorf("pricing_config: unknown priority %d", row.Priority)
		}
		cells[key] = tier
	}

	for i := range records {
		cfg, err := model.NewPricingConfiguration(tiers[records[i].Version])
		if err != nil {
			return nil, fmt.Errorf("pricing_config version %d: %w", records[i].Version, err)
		}
		records[i].Configuration = cfg
	}
	return records, nil
}
