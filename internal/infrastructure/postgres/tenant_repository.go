package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/tenant"
)

// TenantRepository implements tenant.Repository.
type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tenants
		(tenant_id, name, email, phone, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, t.TenantID, t.Name, t.Email, t.Phone, t.Active, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TenantRepository) GetByID(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, phone, active, created_at, updated_at
		FROM tenants WHERE tenant_id=$1
	`, tenantID)
	return scanTenant(row)
}

func (r *TenantRepository) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*tenant.Tenant, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, active, created_at, updated_at
		FROM tenants`
	if !includeInactive {
		query += " WHERE active"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tenants
		SET name=$1, email=$2, phone=$3, active=$4, updated_at=$5
		WHERE tenant_id=$6
	`, t.Name, t.Email, t.Phone, t.Active, t.UpdatedAt, t.TenantID)
	return err
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := row.Scan(&t.ID, &t.TenantID, &t.Name, &t.Email, &t.Phone, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
