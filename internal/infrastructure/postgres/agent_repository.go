package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/agent"
)

// AgentRepository implements agent.Repository.
type AgentRepository struct {
	pool *pgxpool.Pool
}

func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

func (r *AgentRepository) Create(ctx context.Context, a *agent.Agent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agents
		(agent_id, name, license_code, email, phone, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, a.AgentID, a.Name, a.LicenseCode, a.Email, a.Phone, a.Active, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *AgentRepository) GetByID(ctx context.Context, agentID uuid.UUID) (*agent.Agent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, agent_id, name, license_code, email, phone, active, created_at, updated_at
		FROM agents WHERE agent_id=$1
	`, agentID)
	return scanAgent(row)
}

func (r *AgentRepository) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*agent.Agent, error) {
	query := `
		SELECT id, agent_id, name, license_code, email, phone, active, created_at, updated_at
		FROM agents`
	if !includeInactive {
		query += " WHERE active"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var agents []*agent.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *AgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE agents
		SET name=$1, license_code=$2, email=$3, phone=$4, active=$5, updated_at=$6
		WHERE agent_id=$7
	`, a.Name, a.LicenseCode, a.Email, a.Phone, a.Active, a.UpdatedAt, a.AgentID)
	return err
}

func scanAgent(row pgx.Row) (*agent.Agent, error) {
	var a agent.Agent
	if err := row.Scan(&a.ID, &a.AgentID, &a.Name, &a.LicenseCode, &a.Email, &a.Phone, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
