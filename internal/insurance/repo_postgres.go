package insurance

import (
	"context"
	"database/sql"
)

// PostgresRepo persists rate and county data.
//
// Assumed tables:
//
//	CREATE TABLE health_rates (
//	  id                 TEXT PRIMARY KEY,
//	  carrier            TEXT NOT NULL,
//	  plan_type          TEXT NOT NULL,
//	  rating_area        INT NOT NULL,
//	  base_premium_2026  DOUBLE PRECISION NOT NULL,
//	  projected_increase DOUBLE PRECISION NOT NULL
//	);
//	CREATE TABLE county_mappings (
//	  id          TEXT PRIMARY KEY,
//	  county      TEXT NOT NULL,
//	  rating_area INT NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListRates(ctx context.Context) ([]HealthRate, error) {
	const q = `
SELECT id, carrier, plan_type, rating_area, base_premium_2026, projected_increase
FROM health_rates
ORDER BY rating_area, carrier, plan_type
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HealthRate
	for rows.Next() {
		var hr HealthRate
		if err := rows.Scan(&hr.ID, &hr.Carrier, &hr.PlanType, &hr.RatingArea, &hr.BasePremium2026, &hr.ProjectedIncrease); err != nil {
			return nil, err
		}
		out = append(out, hr)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListCounties(ctx context.Context) ([]CountyMapping, error) {
	const q = `
SELECT id, county, rating_area
FROM county_mappings
ORDER BY county
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountyMapping
	for rows.Next() {
		var c CountyMapping
		if err := rows.Scan(&c.ID, &c.County, &c.RatingArea); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) PutRate(ctx context.Context, hr HealthRate) error {
	const q = `
INSERT INTO health_rates (id, carrier, plan_type, rating_area, base_premium_2026, projected_increase)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO NOTHING
`
	_, err := r.db.ExecContext(ctx, q, hr.ID, hr.Carrier, hr.PlanType, hr.RatingArea, hr.BasePremium2026, hr.ProjectedIncrease)
	return err
}

func (r *PostgresRepo) PutCounty(ctx context.Context, c CountyMapping) error {
	const q = `
INSERT INTO county_mappings (id, county, rating_area)
VALUES ($1,$2,$3)
ON CONFLICT (id) DO NOTHING
`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.County, c.RatingArea)
	return err
}

func (r *PostgresRepo) CountRates(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_rates`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
