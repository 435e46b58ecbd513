package subscription

import (
	"context"
	"fmt"
	"net/mail"
	texttmpl "text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/school"
)

var (
	// errors
	ErrNotFound      = core.NewNotFoundError("Subscription not found")
	ErrInvalidPlan   = core.NewValidationError(errors.New("Invalid plan"))
	errInvalidAmount = errors.New("amount must not be negative")

	nowFunc = time.Now // mockable

	invoiceEmailTmpl = texttmpl.Must(texttmpl.New("invoice").Parse(
		`Hello {{.SchoolName}},

Your subscription {{.SubscriptionCode}} to the {{.PlanName}} plan is active until {{.EndDate}}.

Invoice {{.InvoiceNumber}}
Amount due: {{.TotalAmount}}
Due date: {{.DueDate}}
`))
)

type (
	Repository interface {
		// QuerySubscriptions returns the subscriptions matching filter, newest first.
		QuerySubscriptions(ctx context.Context, filter Filter) ([]Subscription, error)
		GetSubscription(ctx context.Context, id int64) (Subscription, error)
		// CreateSubscription inserts sub and returns it joined with its school and plan.
		CreateSubscription(ctx context.Context, sub Subscription) (Subscription, error)
		// UpdateSubscription returns ErrNotFound when no row has sub.ID.
		UpdateSubscription(ctx context.Context, sub Subscription) (Subscription, error)
		DeleteSubscription(ctx context.Context, id int64) error

		CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
		QueryInvoices(ctx context.Context, subscriptionID int64) ([]Invoice, error)
	}

	// PlanGetter resolves plans whether active or not.
	PlanGetter interface {
		Lookup(ctx context.Context, id int64) (plan.Plan, error)
	}

	SchoolGetter interface {
		GetByID(ctx context.Context, id int64) (school.School, error)
	}

	Service struct {
		repo    Repository
		plans   PlanGetter
		schools SchoolGetter
		mailSvc core.EmailService
		logger  core.Logger
		conf    *core.Config
	}
)

func NewService(
	repo Repository,
	plans PlanGetter,
	schools SchoolGetter,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *Service {
	return &Service{
		repo:    repo,
		plans:   plans,
		schools: schools,
		mailSvc: mailSvc,
		logger:  logger,
		conf:    conf,
	}
}

func (svc *Service) Query(ctx context.Context, filter Filter) ([]Subscription, error) {
	return svc.repo.QuerySubscriptions(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Subscription, error) {
	return svc.repo.GetSubscription(ctx, id)
}

func (svc *Service) QueryInvoices(ctx context.Context, subscriptionID int64) ([]Invoice, error) {
	return svc.repo.QueryInvoices(ctx, subscriptionID)
}

// Create subscribes a School to a Plan, then issues its first Invoice.
// The invoice is best effort: its failure is logged and does not fail the subscription.
func (svc *Service) Create(ctx context.Context, ns NewSubscription) (Subscription, error) {
	p, err := svc.plans.Lookup(ctx, ns.PlanID)
	if err != nil {
		if errors.Cause(err) == plan.ErrNotFound {
			return Subscription{}, ErrInvalidPlan
		}
		return Subscription{}, errors.Wrap(err, "getting plan")
	}
	if _, err = svc.schools.GetByID(ctx, ns.SchoolID); err != nil {
		return Subscription{}, errors.Wrap(err, "getting school")
	}

	now := nowFunc().UTC()
	cycle := ns.BillingCycle
	if cycle == "" {
		cycle = p.BillingCycle
	}
	amount := p.Price
	if ns.Amount != nil {
		amount = *ns.Amount
	}

	sub := Subscription{
		SubscriptionCode: newSubscriptionCode(now),
		SchoolID:         ns.SchoolID,
		PlanID:           p.ID,
		BillingCycle:     cycle,
		Amount:           amount,
		Status:           ns.Status,
		StartDate:        ns.StartDate,
		EndDate:          EndDate(ns.StartDate, cycle),
		AutoRenew:        true,
		PaymentMethod:    ns.PaymentMethod,
		TransactionID:    ns.TransactionID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if sub.Status == "" {
		sub.Status = StatusActive
	}
	if ns.AutoRenew != nil {
		sub.AutoRenew = *ns.AutoRenew
	}
	if sub.PaymentMethod == "" {
		sub.PaymentMethod = svc.conf.Billing.DefaultPaymentMethod
	}
	if sub.TransactionID == "" {
		sub.TransactionID = newTransactionID(now)
	}

	if sub, err = svc.repo.CreateSubscription(ctx, sub); err != nil {
		return Subscription{}, errors.Wrap(err, "creating subscription")
	}

	svc.issueInvoice(ctx, sub, now)
	return sub, nil
}

func (svc *Service) issueInvoice(ctx context.Context, sub Subscription, now time.Time) {
	inv, err := svc.repo.CreateInvoice(ctx, newInvoice(sub, now, svc.conf.Billing.InvoiceDueDays))
	if err != nil {
		svc.logger.Error(
			fmt.Sprintf("creating invoice for subscription %s: %v", sub.SubscriptionCode, err),
			errors.Wrap(err, "creating invoice"),
			map[string]interface{}{"subscription_id": sub.ID, "school_id": sub.SchoolID},
		)
		return
	}
	svc.notifyInvoice(sub, inv)
}

func (svc *Service) notifyInvoice(sub Subscription, inv Invoice) {
	if svc.mailSvc == nil || sub.SchoolEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:       []mail.Address{{Name: sub.SchoolName, Address: sub.SchoolEmail}},
		Subject:  "Invoice " + inv.InvoiceNumber,
		Template: invoiceEmailTmpl,
		TemplateData: map[string]interface{}{
			"SchoolName":       sub.SchoolName,
			"SubscriptionCode": sub.SubscriptionCode,
			"PlanName":         sub.PlanName,
			"EndDate":          sub.EndDate.String(),
			"InvoiceNumber":    inv.InvoiceNumber,
			"TotalAmount":      inv.TotalAmount.StringFixed(2),
			"DueDate":          inv.DueDate.String(),
		},
	})
}

func (svc *Service) Update(ctx context.Context, id int64, us UpdateSubscription) (Subscription, error) {
	sub, err := svc.repo.GetSubscription(ctx, id)
	if err != nil {
		return Subscription{}, err
	}

	if us.PlanID != nil && *us.PlanID != sub.PlanID {
		if _, err = svc.plans.Lookup(ctx, *us.PlanID); err != nil {
			if errors.Cause(err) == plan.ErrNotFound {
				return Subscription{}, core.NewValidationError(errors.Errorf("Invalid plan_id: %d", *us.PlanID))
			}
			return Subscription{}, errors.Wrap(err, "getting plan")
		}
		sub.PlanID = *us.PlanID
	}
	if us.Amount != nil {
		sub.Amount = *us.Amount
	}
	if us.Status != nil {
		sub.Status = *us.Status
	}
	if us.EndDate != nil {
		sub.EndDate = *us.EndDate
	}
	if us.AutoRenew != nil {
		sub.AutoRenew = *us.AutoRenew
	}
	if us.PaymentMethod != nil {
		sub.PaymentMethod = *us.PaymentMethod
	}
	if us.TransactionID != nil {
		sub.TransactionID = *us.TransactionID
	}
	sub.UpdatedAt = nowFunc().UTC()

	return svc.repo.UpdateSubscription(ctx, sub)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteSubscription(ctx, id)
}
