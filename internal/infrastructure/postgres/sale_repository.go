package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// SaleRepository implements sale.Repository.
type SaleRepository struct {
	pool *pgxpool.Pool
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

const saleColumns = `id, sale_id, property_id, buyer_name, agent_id, sale_date, sale_price::text, status,
		previous_property_status, cancelled_at, cancel_reason, created_at, created_by, updated_at`

// CreateCompleted locks the property row, captures its status on the sale,
// inserts the sale and marks the property SOLD in one transaction.
func (r *SaleRepository) CreateCompleted(ctx context.Context, s *sale.Sale) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status property.Status
	err = tx.QueryRow(ctx, `
		SELECT status FROM properties WHERE property_id=$1 FOR UPDATE
	`, s.PropertyID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &estate.NotFoundError{Resource: "property", ID: s.PropertyID.String()}
		}
		return err
	}
	if status == property.StatusSold {
		return &estate.ConflictError{Resource: "sale", Detail: "property " + s.PropertyID.String() + " is already sold"}
	}
	s.PreviousPropertyStatus = status

	_, err = tx.Exec(ctx, `
		INSERT INTO sales
		(sale_id, property_id, buyer_name, agent_id, sale_date, sale_price, status, previous_property_status, created_at, created_by, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, s.SaleID, s.PropertyID, s.BuyerName, s.AgentID, s.SaleDate, s.SalePrice, s.Status, s.PreviousPropertyStatus, s.CreatedAt, s.CreatedBy, s.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE properties SET status=$1, updated_at=NOW() WHERE property_id=$2
	`, property.StatusSold, s.PropertyID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *SaleRepository) GetByID(ctx context.Context, saleID uuid.UUID) (*sale.Sale, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+saleColumns+` FROM sales WHERE sale_id=$1
	`, saleID)
	return scanSale(row)
}

func (r *SaleRepository) List(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
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
	if filter.AgentID != nil {
		query += addWhere(query) + " agent_id=$" + itoa(idx)
		args = append(args, *filter.AgentID)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []*sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// CancelWithRevert persists the cancellation and reverts the property to
// previousStatus only when it is still SOLD. A property re-listed or
// re-sold since keeps its current status.
func (r *SaleRepository) CancelWithRevert(ctx context.Context, s *sale.Sale, previousStatus property.Status) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	// The sale row moves off COMPLETED exactly once.
	res, err := tx.Exec(ctx, `
		UPDATE sales SET status=$1, cancelled_at=$2, cancel_reason=$3, updated_at=$4
		WHERE sale_id=$5 AND status=$6
	`, s.Status, s.CancelledAt, s.CancelReason, s.UpdatedAt, s.SaleID, sale.StatusCompleted)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() == 0 {
		return false, &estate.TransitionError{
			Entity: "sale",
			From:   string(sale.StatusCancelled),
			To:     string(sale.StatusCancelled),
		}
	}

	res, err = tx.Exec(ctx, `
		UPDATE properties SET status=$1, updated_at=NOW()
		WHERE property_id=$2 AND status=$3
	`, previousStatus, s.PropertyID, property.StatusSold)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var price string
	if err := row.Scan(&s.ID, &s.SaleID, &s.PropertyID, &s.BuyerName, &s.AgentID, &s.SaleDate, &price, &s.Status,
		&s.PreviousPropertyStatus, &s.CancelledAt, &s.CancelReason, &s.CreatedAt, &s.CreatedBy, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if s.SalePrice, err = parseDecimal(price); err != nil {
		return nil, err
	}
	return &s, nil
}
