package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/audit"
)

// AuditRepository implements audit.Repository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs
		(audit_id, entity_type, entity_id, action, actor, actor_role, actor_ip, old_values, new_values, reason, request_method, request_path, signature, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, log.AuditID, log.EntityType, log.EntityID, log.Action, log.Actor, log.ActorRole, log.ActorIP,
		log.OldValues, log.NewValues, log.Reason, log.RequestMethod, log.RequestPath, log.Signature, log.CreatedAt)
	return err
}

func (r *AuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.AuditLog, error) {
	query := `
		SELECT id, audit_id, entity_type, entity_id, action, actor, actor_role, actor_ip::text, old_values, new_values, reason, request_method, request_path, signature, created_at
		FROM audit_logs`
	args := []interface{}{}
	idx := 1
	if filter.EntityType != nil {
		query += addWhere(query) + " entity_type=$" + itoa(idx)
		args = append(args, *filter.EntityType)
		idx++
	}
	if filter.EntityID != nil {
		query += addWhere(query) + " entity_id=$" + itoa(idx)
		args = append(args, *filter.EntityID)
		idx++
	}
	if filter.Action != nil {
		query += addWhere(query) + " action=$" + itoa(idx)
		args = append(args, *filter.Action)
		idx++
	}
	if filter.Actor != nil {
		query += addWhere(query) + " actor=$" + itoa(idx)
		args = append(args, *filter.Actor)
		idx++
	}
	if filter.From != nil {
		query += addWhere(query) + " created_at >= $" + itoa(idx)
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		query += addWhere(query) + " created_at <= $" + itoa(idx)
		args = append(args, *filter.To)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []*audit.AuditLog
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func scanAuditLog(row pgx.Row) (*audit.AuditLog, error) {
	var log audit.AuditLog
	var oldValues, newValues json.RawMessage
	if err := row.Scan(&log.ID, &log.AuditID, &log.EntityType, &log.EntityID, &log.Action, &log.Actor, &log.ActorRole,
		&log.ActorIP, &oldValues, &newValues, &log.Reason, &log.RequestMethod, &log.RequestPath, &log.Signature, &log.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	log.OldValues = oldValues
	log.NewValues = newValues
	return &log, nil
}
