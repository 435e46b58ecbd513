package sqlxrepos

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/subscription"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	subscriptionColumns = []string{
		"ss.id",
		"ss.subscription_code",
		"ss.school_id",
		"COALESCE(s.school_code, '') AS school_code",
		"COALESCE(s.name, '') AS school_name",
		"COALESCE(s.email, '') AS school_email",
		"ss.plan_id",
		"COALESCE(sp.plan_code, '') AS plan_code",
		"COALESCE(sp.name, '') AS plan_name",
		"ss.billing_cycle",
		"sp.features",
		"ss.amount",
		"ss.status",
		"ss.start_date",
		"ss.end_date",
		"ss.auto_renew",
		"ss.payment_method",
		"ss.transaction_id",
		"ss.created_at",
		"ss.updated_at",
	}
	subscriptionOrdering = []core.DBOrdering{{Field: "ss.created_at"}, {Field: "ss.id"}}
)

const invoiceColumns = `id, invoice_number, subscription_id, school_id, amount, tax, total_amount,
	invoice_date, due_date, status, items, created_at`

type (
	subscriptionRepository struct {
		exec core.DBExecutor
	}

	invoiceRow struct {
		subscription.Invoice
		Items string `db:"items"`
	}
)

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(exec core.DBExecutor) subscription.Repository {
	return &subscriptionRepository{exec: exec}
}

func (repo *subscriptionRepository) selectJoined() sq.SelectBuilder {
	return psql.Select(subscriptionColumns...).
		From("school_subscriptions ss").
		LeftJoin("schools s ON s.id = ss.school_id").
		LeftJoin("subscription_plans sp ON sp.id = ss.plan_id")
}

func (repo *subscriptionRepository) QuerySubscriptions(ctx context.Context, filter subscription.Filter) ([]subscription.Subscription, error) {
	qb := repo.selectJoined()
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"ss.status": filter.Status})
	}
	if filter.SchoolID != 0 {
		qb = qb.Where(sq.Eq{"ss.school_id": filter.SchoolID})
	}
	if filter.PlanID != 0 {
		qb = qb.Where(sq.Eq{"ss.plan_id": filter.PlanID})
	}
	q, args, err := qb.OrderBy(orderBy(subscriptionOrdering)).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building subscriptions query")
	}

	subs := make([]subscription.Subscription, 0)
	if err = repo.exec.SelectContext(ctx, &subs, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting subscriptions")
	}
	for i := range subs {
		subs[i].Features = plan.DecodeAttributes(subs[i].Features)
	}
	return subs, nil
}

func (repo *subscriptionRepository) GetSubscription(ctx context.Context, id int64) (subscription.Subscription, error) {
	q, args, err := repo.selectJoined().Where(sq.Eq{"ss.id": id}).ToSql()
	if err != nil {
		return subscription.Subscription{}, errors.Wrap(err, "building subscription query")
	}

	var sub subscription.Subscription
	if err = repo.exec.GetContext(ctx, &sub, q, args...); err != nil {
		return subscription.Subscription{}, trapErr(err, subscription.ErrNotFound)
	}
	sub.Features = plan.DecodeAttributes(sub.Features)
	return sub, nil
}

func (repo *subscriptionRepository) CreateSubscription(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	var id int64
	q := `INSERT INTO school_subscriptions (
		subscription_code, school_id, plan_id, billing_cycle, amount, status, start_date, end_date,
		auto_renew, payment_method, transaction_id, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id`
	err := repo.exec.GetContext(
		ctx, &id, q,
		sub.SubscriptionCode, sub.SchoolID, sub.PlanID, sub.BillingCycle, sub.Amount, sub.Status, sub.StartDate, sub.EndDate,
		sub.AutoRenew, sub.PaymentMethod, sub.TransactionID, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return subscription.Subscription{}, trapErr(errors.Wrap(err, "inserting subscription"), subscription.ErrNotFound)
	}
	return repo.GetSubscription(ctx, id)
}

func (repo *subscriptionRepository) UpdateSubscription(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	q := `UPDATE school_subscriptions SET
		plan_id = $1, amount = $2, status = $3, end_date = $4, auto_renew = $5,
		payment_method = $6, transaction_id = $7, updated_at = $8
	WHERE id = $9`
	res, err := repo.exec.ExecContext(
		ctx, q,
		sub.PlanID, sub.Amount, sub.Status, sub.EndDate, sub.AutoRenew,
		sub.PaymentMethod, sub.TransactionID, sub.UpdatedAt, sub.ID,
	)
	if err != nil {
		return subscription.Subscription{}, trapErr(errors.Wrap(err, "updating subscription"), subscription.ErrNotFound)
	}
	if err = checkAffected(res, subscription.ErrNotFound); err != nil {
		return subscription.Subscription{}, err
	}
	return repo.GetSubscription(ctx, sub.ID)
}

func (repo *subscriptionRepository) DeleteSubscription(ctx context.Context, id int64) error {
	res, err := repo.exec.ExecContext(ctx, `DELETE FROM school_subscriptions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subscription")
	}
	return checkAffected(res, subscription.ErrNotFound)
}

func (repo *subscriptionRepository) CreateInvoice(ctx context.Context, inv subscription.Invoice) (subscription.Invoice, error) {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return subscription.Invoice{}, errors.Wrap(err, "encoding invoice items")
	}

	q := `INSERT INTO invoices (
		invoice_number, subscription_id, school_id, amount, tax, total_amount,
		invoice_date, due_date, status, items, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id`
	err = repo.exec.GetContext(
		ctx, &inv.ID, q,
		inv.InvoiceNumber, inv.SubscriptionID, inv.SchoolID, inv.Amount, inv.Tax, inv.TotalAmount,
		inv.InvoiceDate, inv.DueDate, inv.Status, string(items), inv.CreatedAt,
	)
	if err != nil {
		return subscription.Invoice{}, trapErr(errors.Wrap(err, "inserting invoice"), subscription.ErrNotFound)
	}
	return inv, nil
}

func (repo *subscriptionRepository) QueryInvoices(ctx context.Context, subscriptionID int64) ([]subscription.Invoice, error) {
	var rows []invoiceRow
	q := `SELECT ` + invoiceColumns + ` FROM invoices WHERE subscription_id = $1 ORDER BY id`
	if err := repo.exec.SelectContext(ctx, &rows, q, subscriptionID); err != nil {
		return nil, errors.Wrap(err, "selecting invoices")
	}

	invoices := make([]subscription.Invoice, 0, len(rows))
	for _, row := range rows {
		inv := row.Invoice
		if err := json.Unmarshal([]byte(row.Items), &inv.Items); err != nil {
			return nil, errors.Wrapf(err, "decoding items of invoice %s", inv.InvoiceNumber)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
