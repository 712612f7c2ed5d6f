package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/commission"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

// CommissionRuleRepository implements commission.RuleRepository.
type CommissionRuleRepository struct {
	pool *pgxpool.Pool
}

func NewCommissionRuleRepository(pool *pgxpool.Pool) *CommissionRuleRepository {
	return &CommissionRuleRepository{pool: pool}
}

const ruleColumns = `id, rule_id, agent_id, transaction_type, commission_structure, percentage::text, fixed_amount::text,
		min_value::text, max_value::text, valid_from, valid_until, active, created_at, created_by, updated_at`

func (r *CommissionRuleRepository) Create(ctx context.Context, rule *commission.Rule) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO commission_rules
		(rule_id, agent_id, transaction_type, commission_structure, percentage, fixed_amount, min_value, max_value, valid_from, valid_until, active, created_at, created_by, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id
	`, rule.RuleID, rule.AgentID, rule.TransactionType, rule.Structure, rule.Percentage, rule.FixedAmount,
		rule.MinValue, rule.MaxValue, rule.ValidFrom, rule.ValidUntil, rule.Active, rule.CreatedAt, rule.CreatedBy, rule.UpdatedAt).Scan(&rule.ID)
}

func (r *CommissionRuleRepository) GetByID(ctx context.Context, ruleID uuid.UUID) (*commission.Rule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+ruleColumns+` FROM commission_rules WHERE rule_id=$1
	`, ruleID)
	return scanRule(row)
}

func (r *CommissionRuleRepository) List(ctx context.Context, filter commission.RuleFilter) ([]*commission.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM commission_rules`
	args := []interface{}{}
	idx := 1
	if filter.AgentID != nil {
		query += addWhere(query) + " agent_id=$" + itoa(idx)
		args = append(args, *filter.AgentID)
		idx++
	}
	if filter.TransactionType != nil {
		query += addWhere(query) + " transaction_type=$" + itoa(idx)
		args = append(args, *filter.TransactionType)
		idx++
	}
	if filter.ActiveOnly {
		query += addWhere(query) + " active"
	}
	query += " ORDER BY valid_from DESC, id DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRules(rows)
}

func (r *CommissionRuleRepository) Update(ctx context.Context, rule *commission.Rule) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE commission_rules
		SET transaction_type=$1, commission_structure=$2, percentage=$3, fixed_amount=$4,
			min_value=$5, max_value=$6, valid_from=$7, valid_until=$8, active=$9, updated_at=$10
		WHERE rule_id=$11
	`, rule.TransactionType, rule.Structure, rule.Percentage, rule.FixedAmount,
		rule.MinValue, rule.MaxValue, rule.ValidFrom, rule.ValidUntil, rule.Active, rule.UpdatedAt, rule.RuleID)
	return err
}

// CommissionTransactionRepository implements commission.TransactionRepository.
type CommissionTransactionRepository struct {
	pool *pgxpool.Pool
}

func NewCommissionTransactionRepository(pool *pgxpool.Pool) *CommissionTransactionRepository {
	return &CommissionTransactionRepository{pool: pool}
}

const transactionColumns = `id, transaction_id, agent_id, rule_id, transaction_type, reference_id,
		transaction_amount::text, commission_amount::text, transaction_date, rule_snapshot,
		payment_status, payment_date, created_at, created_by, updated_at`

// Record locks the agent row, loads the agent's active rules, hands them to
// fn, and inserts the transaction fn returns, all in one database
// transaction. An error from fn aborts everything.
func (r *CommissionTransactionRepository) Record(ctx context.Context, agentID uuid.UUID, fn func(rules []*commission.Rule) (*commission.Transaction, error)) (*commission.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var agentRef int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM agents WHERE agent_id=$1 FOR UPDATE
	`, agentID).Scan(&agentRef)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &estate.NotFoundError{Resource: "agent", ID: agentID.String()}
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+ruleColumns+` FROM commission_rules
		WHERE agent_id=$1 AND active
		ORDER BY valid_from DESC, id DESC
	`, agentID)
	if err != nil {
		return nil, err
	}
	rules, err := collectRules(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	t, err := fn(rules)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO commission_transactions
		(transaction_id, agent_id, rule_id, transaction_type, reference_id, transaction_amount, commission_amount, transaction_date, rule_snapshot, payment_status, payment_date, created_at, created_by, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id
	`, t.TransactionID, t.AgentID, t.RuleID, t.TransactionType, t.ReferenceID, t.TransactionAmount, t.CommissionAmount,
		t.TransactionDate, t.RuleSnapshot, t.PaymentStatus, t.PaymentDate, t.CreatedAt, t.CreatedBy, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *CommissionTransactionRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*commission.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM commission_transactions WHERE transaction_id=$1
	`, transactionID)
	return scanTransaction(row)
}

func (r *CommissionTransactionRepository) List(ctx context.Context, filter commission.TransactionFilter) ([]*commission.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM commission_transactions`
	args := []interface{}{}
	idx := 1
	if filter.AgentID != nil {
		query += addWhere(query) + " agent_id=$" + itoa(idx)
		args = append(args, *filter.AgentID)
		idx++
	}
	if filter.TransactionType != nil {
		query += addWhere(query) + " transaction_type=$" + itoa(idx)
		args = append(args, *filter.TransactionType)
		idx++
	}
	if filter.PaymentStatus != nil {
		query += addWhere(query) + " payment_status=$" + itoa(idx)
		args = append(args, *filter.PaymentStatus)
		idx++
	}
	if filter.From != nil {
		query += addWhere(query) + " transaction_date >= $" + itoa(idx)
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		query += addWhere(query) + " transaction_date <= $" + itoa(idx)
		args = append(args, *filter.To)
		idx++
	}
	query += " ORDER BY transaction_date DESC, id DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transactions []*commission.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *CommissionTransactionRepository) UpdatePayment(ctx context.Context, t *commission.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE commission_transactions SET payment_status=$1, payment_date=$2, updated_at=$3 WHERE transaction_id=$4
	`, t.PaymentStatus, t.PaymentDate, t.UpdatedAt, t.TransactionID)
	return err
}

func (r *CommissionTransactionRepository) Summarize(ctx context.Context, agentID uuid.UUID, from, to *time.Time) (*commission.Summary, error) {
	query := `
		SELECT payment_status, COUNT(*), COALESCE(SUM(commission_amount),0)::text
		FROM commission_transactions
		WHERE agent_id=$1`
	args := []interface{}{agentID}
	idx := 2
	if from != nil {
		query += " AND transaction_date >= $" + itoa(idx)
		args = append(args, *from)
		idx++
	}
	if to != nil {
		query += " AND transaction_date <= $" + itoa(idx)
		args = append(args, *to)
		idx++
	}
	query += " GROUP BY payment_status"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &commission.Summary{AgentID: agentID, From: from, To: to}
	for rows.Next() {
		var status commission.PaymentStatus
		var count int
		var total string
		if err := rows.Scan(&status, &count, &total); err != nil {
			return nil, err
		}
		amount, err := parseDecimal(total)
		if err != nil {
			return nil, err
		}
		switch status {
		case commission.PaymentPending:
			summary.PendingCount = count
			summary.PendingAmount = amount
		case commission.PaymentPaid:
			summary.PaidCount = count
			summary.PaidAmount = amount
		case commission.PaymentCancelled:
			summary.CancelledCount = count
			summary.CancelledAmount = amount
		}
		summary.TotalCount += count
		summary.TotalCommission = summary.TotalCommission.Add(amount)
	}
	return summary, rows.Err()
}

func scanRule(row pgx.Row) (*commission.Rule, error) {
	var rule commission.Rule
	var percentage, fixedAmount, minValue, maxValue *string
	if err := row.Scan(&rule.ID, &rule.RuleID, &rule.AgentID, &rule.TransactionType, &rule.Structure,
		&percentage, &fixedAmount, &minValue, &maxValue,
		&rule.ValidFrom, &rule.ValidUntil, &rule.Active, &rule.CreatedAt, &rule.CreatedBy, &rule.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if rule.Percentage, err = parseDecimalPtr(percentage); err != nil {
		return nil, err
	}
	if rule.FixedAmount, err = parseDecimalPtr(fixedAmount); err != nil {
		return nil, err
	}
	if rule.MinValue, err = parseDecimalPtr(minValue); err != nil {
		return nil, err
	}
	if rule.MaxValue, err = parseDecimalPtr(maxValue); err != nil {
		return nil, err
	}
	return &rule, nil
}

func collectRules(rows pgx.Rows) ([]*commission.Rule, error) {
	var rules []*commission.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func scanTransaction(row pgx.Row) (*commission.Transaction, error) {
	var t commission.Transaction
	var amount, commissionAmount string
	var snapshot json.RawMessage
	if err := row.Scan(&t.ID, &t.TransactionID, &t.AgentID, &t.RuleID, &t.TransactionType, &t.ReferenceID,
		&amount, &commissionAmount, &t.TransactionDate, &snapshot,
		&t.PaymentStatus, &t.PaymentDate, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if t.TransactionAmount, err = parseDecimal(amount); err != nil {
		return nil, err
	}
	if t.CommissionAmount, err = parseDecimal(commissionAmount); err != nil {
		return nil, err
	}
	t.RuleSnapshot = snapshot
	return &t, nil
}
