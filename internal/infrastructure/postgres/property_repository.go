package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// PropertyRepository implements property.Repository.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO properties
		(property_id, reference_code, name, address, agent_id, status, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, p.PropertyID, p.ReferenceCode, p.Name, p.Address, p.AgentID, p.Status, p.Active, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PropertyRepository) GetByID(ctx context.Context, propertyID uuid.UUID) (*property.Property, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, property_id, reference_code, name, address, agent_id, status, active, created_at, updated_at
		FROM properties WHERE property_id=$1
	`, propertyID)
	return scanProperty(row)
}

func (r *PropertyRepository) List(ctx context.Context, status *property.Status, limit, offset int) ([]*property.Property, error) {
	query := `
		SELECT id, property_id, reference_code, name, address, agent_id, status, active, created_at, updated_at
		FROM properties`
	args := []interface{}{}
	if status != nil {
		query += " WHERE status=$1"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var properties []*property.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE properties
		SET reference_code=$1, name=$2, address=$3, agent_id=$4, status=$5, active=$6, updated_at=$7
		WHERE property_id=$8
	`, p.ReferenceCode, p.Name, p.Address, p.AgentID, p.Status, p.Active, p.UpdatedAt, p.PropertyID)
	return err
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, propertyID uuid.UUID, status property.Status) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE properties SET status=$1, updated_at=NOW() WHERE property_id=$2
	`, status, propertyID)
	return err
}

func scanProperty(row pgx.Row) (*property.Property, error) {
	var p property.Property
	var agentID *uuid.UUID
	if err := row.Scan(&p.ID, &p.PropertyID, &p.ReferenceCode, &p.Name, &p.Address, &agentID, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.AgentID = agentID
	return &p, nil
}
