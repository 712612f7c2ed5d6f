package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/lease"
)

// LeaseRepository implements lease.Repository.
type LeaseRepository struct {
	pool *pgxpool.Pool
}

func NewLeaseRepository(pool *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{pool: pool}
}

const leaseColumns = `id, lease_id, property_id, tenant_id, start_date, end_date, rent_amount::text, status, active,
		termination_date, termination_reason, termination_penalty::text, created_at, created_by, updated_at, updated_by`

// CreateExclusive serializes lease creation per property: the property row
// is locked before the overlap check so two concurrent creations for the
// same property cannot both pass it.
func (r *LeaseRepository) CreateExclusive(ctx context.Context, l *lease.Lease) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var propertyRef int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM properties WHERE property_id=$1 FOR UPDATE
	`, l.PropertyID).Scan(&propertyRef)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &estate.NotFoundError{Resource: "property", ID: l.PropertyID.String()}
		}
		return err
	}

	var overlapping int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM leases
		WHERE property_id=$1
		AND status IN ('DRAFT','ACTIVE')
		AND active
		AND start_date <= $3
		AND end_date >= $2
	`, l.PropertyID, l.StartDate, l.EndDate).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return &estate.ConflictError{
			Resource: "lease",
			Detail: fmt.Sprintf("property %s already has a draft or active lease overlapping %s..%s",
				l.PropertyID, l.StartDate.Format(estate.DateLayout), l.EndDate.Format(estate.DateLayout)),
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO leases
		(lease_id, property_id, tenant_id, start_date, end_date, rent_amount, status, active, created_at, created_by, updated_at, updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, l.LeaseID, l.PropertyID, l.TenantID, l.StartDate, l.EndDate, l.RentAmount, l.Status, l.Active, l.CreatedAt, l.CreatedBy, l.UpdatedAt, l.UpdatedBy)
	if err != nil {
		return mapExclusionViolation(err, "lease",
			fmt.Sprintf("property %s already has a draft or active lease overlapping %s..%s",
				l.PropertyID, l.StartDate.Format(estate.DateLayout), l.EndDate.Format(estate.DateLayout)))
	}
	return tx.Commit(ctx)
}

func (r *LeaseRepository) GetByID(ctx context.Context, leaseID uuid.UUID) (*lease.Lease, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leaseColumns+` FROM leases WHERE lease_id=$1
	`, leaseID)
	return scanLease(row)
}

func (r *LeaseRepository) List(ctx context.Context, filter lease.ListFilter) ([]*lease.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases`
	args := []interface{}{}
	idx := 1
	if filter.Status != nil {
		query += addWhere(query) + " status=$" + itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.PropertyID != nil {
		query += addWhere(query) + " property_id=$" + itoa(idx)
		args = append(args, *filter.PropertyID)
		idx++
	}
	if filter.TenantID != nil {
		query += addWhere(query) + " tenant_id=$" + itoa(idx)
		args = append(args, *filter.TenantID)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var leases []*lease.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (r *LeaseRepository) Update(ctx context.Context, l *lease.Lease) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leases
		SET start_date=$1, end_date=$2, rent_amount=$3, status=$4, active=$5,
			termination_date=$6, termination_reason=$7, termination_penalty=$8, updated_at=$9, updated_by=$10
		WHERE lease_id=$11
	`, l.StartDate, l.EndDate, l.RentAmount, l.Status, l.Active,
		l.TerminationDate, l.TerminationReason, l.TerminationPenalty, l.UpdatedAt, l.UpdatedBy, l.LeaseID)
	if err != nil {
		return mapExclusionViolation(err, "lease",
			fmt.Sprintf("property %s already has a draft or active lease overlapping %s..%s",
				l.PropertyID, l.StartDate.Format(estate.DateLayout), l.EndDate.Format(estate.DateLayout)))
	}
	return nil
}

// Renew updates the lease and appends its renewal record atomically.
func (r *LeaseRepository) Renew(ctx context.Context, l *lease.Lease, rec *lease.RenewalRecord) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE leases SET end_date=$1, rent_amount=$2, updated_at=$3, updated_by=$4 WHERE lease_id=$5
	`, l.EndDate, l.RentAmount, l.UpdatedAt, l.UpdatedBy, l.LeaseID)
	if err != nil {
		return mapExclusionViolation(err, "lease",
			fmt.Sprintf("property %s already has a draft or active lease overlapping the renewed window ending %s",
				l.PropertyID, l.EndDate.Format(estate.DateLayout)))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO lease_renewals
		(lease_id, previous_end_date, previous_rent, new_end_date, new_rent, renewed_by, reason, renewed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rec.LeaseID, rec.PreviousEndDate, rec.PreviousRent, rec.NewEndDate, rec.NewRent, rec.RenewedBy, rec.Reason, rec.RenewedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *LeaseRepository) ListRenewals(ctx context.Context, leaseID uuid.UUID) ([]*lease.RenewalRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lease_id, previous_end_date, previous_rent::text, new_end_date, new_rent::text, renewed_by, reason, renewed_at
		FROM lease_renewals WHERE lease_id=$1 ORDER BY renewed_at ASC
	`, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []*lease.RenewalRecord
	for rows.Next() {
		var rec lease.RenewalRecord
		var prevRent, newRent string
		if err := rows.Scan(&rec.ID, &rec.LeaseID, &rec.PreviousEndDate, &prevRent, &rec.NewEndDate, &newRent, &rec.RenewedBy, &rec.Reason, &rec.RenewedAt); err != nil {
			return nil, err
		}
		if rec.PreviousRent, err = parseDecimal(prevRent); err != nil {
			return nil, err
		}
		if rec.NewRent, err = parseDecimal(newRent); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *LeaseRepository) ListDueForExpiry(ctx context.Context, today time.Time, limit int) ([]*lease.Lease, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE status='ACTIVE' AND active AND end_date < $1
		ORDER BY end_date ASC
		LIMIT $2
	`, today, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var leases []*lease.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (r *LeaseRepository) SetArchived(ctx context.Context, leaseID uuid.UUID, archived bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leases SET active=$1, updated_at=NOW() WHERE lease_id=$2
	`, !archived, leaseID)
	return err
}

func scanLease(row pgx.Row) (*lease.Lease, error) {
	var l lease.Lease
	var rent string
	var penalty *string
	if err := row.Scan(&l.ID, &l.LeaseID, &l.PropertyID, &l.TenantID, &l.StartDate, &l.EndDate, &rent, &l.Status, &l.Active,
		&l.TerminationDate, &l.TerminationReason, &penalty, &l.CreatedAt, &l.CreatedBy, &l.UpdatedAt, &l.UpdatedBy); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if l.RentAmount, err = parseDecimal(rent); err != nil {
		return nil, err
	}
	if l.TerminationPenalty, err = parseDecimalPtr(penalty); err != nil {
		return nil, err
	}
	return &l, nil
}
