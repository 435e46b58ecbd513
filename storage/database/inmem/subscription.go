package inmemdb

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/subscription"
)

type subscriptionRepository struct {
	db *DB
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *DB) subscription.Repository {
	return &subscriptionRepository{db: db}
}

// join fills the school & plan display fields; must be called with the lock held.
func (repo *subscriptionRepository) join(sub subscription.Subscription) subscription.Subscription {
	if sch, ok := repo.db.school[sub.SchoolID]; ok {
		sub.SchoolCode = sch.SchoolCode
		sub.SchoolName = sch.Name
		sub.SchoolEmail = sch.Email
	}
	if p, ok := repo.db.plan[sub.PlanID]; ok {
		sub.PlanCode = p.PlanCode
		sub.PlanName = p.Name
		sub.Features = plan.DecodeAttributes(p.Features)
		if sub.BillingCycle == "" {
			sub.BillingCycle = p.BillingCycle
		}
	}
	return sub
}

// checkRefs enforces the foreign keys and subscription_code uniqueness; must be called with the lock held.
func (repo *subscriptionRepository) checkRefs(sub subscription.Subscription) error {
	if _, ok := repo.db.school[sub.SchoolID]; !ok {
		return core.NewConflictError(errors.Errorf("school %d does not exist", sub.SchoolID))
	}
	if _, ok := repo.db.plan[sub.PlanID]; !ok {
		return core.NewConflictError(errors.Errorf("plan %d does not exist", sub.PlanID))
	}
	for _, other := range repo.db.subscription {
		if other.SubscriptionCode == sub.SubscriptionCode && other.ID != sub.ID {
			return core.NewConflictError(errors.Errorf("subscription_code %q already exists", sub.SubscriptionCode))
		}
	}
	return nil
}

func (repo *subscriptionRepository) QuerySubscriptions(ctx context.Context, filter subscription.Filter) ([]subscription.Subscription, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]subscription.Subscription, 0, len(repo.db.subscription))
	for _, sub := range repo.db.subscription {
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if filter.SchoolID != 0 && sub.SchoolID != filter.SchoolID {
			continue
		}
		if filter.PlanID != 0 && sub.PlanID != filter.PlanID {
			continue
		}
		subs = append(subs, repo.join(*sub))
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].ID > subs[j].ID
		}
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (repo *subscriptionRepository) GetSubscription(ctx context.Context, id int64) (subscription.Subscription, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.subscription[id]; ok {
		return repo.join(*sub), nil
	}
	return subscription.Subscription{}, subscription.ErrNotFound
}

func (repo *subscriptionRepository) CreateSubscription(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.checkRefs(sub); err != nil {
		return subscription.Subscription{}, err
	}
	sub.ID = repo.db.nextPK("subscription")
	repo.db.subscription[sub.ID] = &sub
	return repo.join(sub), nil
}

func (repo *subscriptionRepository) UpdateSubscription(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.subscription[sub.ID]
	if !ok {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	if err := repo.checkRefs(sub); err != nil {
		return subscription.Subscription{}, err
	}

	// immutable columns
	sub.SubscriptionCode = orig.SubscriptionCode
	sub.SchoolID = orig.SchoolID
	sub.StartDate = orig.StartDate
	sub.BillingCycle = orig.BillingCycle
	sub.CreatedAt = orig.CreatedAt
	repo.db.subscription[sub.ID] = &sub
	return repo.join(sub), nil
}

func (repo *subscriptionRepository) DeleteSubscription(ctx context.Context, id int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.subscription[id]; !ok {
		return subscription.ErrNotFound
	}
	delete(repo.db.subscription, id)
	for invID, inv := range repo.db.invoice { // ON DELETE CASCADE
		if inv.SubscriptionID == id {
			delete(repo.db.invoice, invID)
		}
	}
	return nil
}

func (repo *subscriptionRepository) CreateInvoice(ctx context.Context, inv subscription.Invoice) (subscription.Invoice, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.subscription[inv.SubscriptionID]; !ok {
		return subscription.Invoice{}, core.NewConflictError(errors.Errorf("subscription %d does not exist", inv.SubscriptionID))
	}
	for _, other := range repo.db.invoice {
		if other.InvoiceNumber == inv.InvoiceNumber {
			return subscription.Invoice{}, core.NewConflictError(errors.Errorf("invoice_number %q already exists", inv.InvoiceNumber))
		}
	}
	inv.ID = repo.db.nextPK("invoice")
	repo.db.invoice[inv.ID] = &inv
	return inv, nil
}

func (repo *subscriptionRepository) QueryInvoices(ctx context.Context, subscriptionID int64) ([]subscription.Invoice, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	invoices := make([]subscription.Invoice, 0)
	for _, inv := range repo.db.invoice {
		if inv.SubscriptionID == subscriptionID {
			invoices = append(invoices, *inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].ID < invoices[j].ID })
	return invoices, nil
}
