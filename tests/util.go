package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/school"
	"github.com/trezcool/trackx/core/subscription"
)

func tstamp(createdAt []time.Time) time.Time {
	if len(createdAt) > 0 {
		return createdAt[0].UTC()
	}
	return time.Now().UTC()
}

func CreateSchool(t *testing.T, repo school.Repository, code, name, email string, createdAt ...time.Time) school.School {
	ts := tstamp(createdAt)
	sch, err := repo.CreateSchool(context.Background(), school.School{
		SchoolCode: code,
		Name:       name,
		Email:      email,
		Status:     school.StatusActive,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
	if err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

// CreatePlan stores an active plan; features is raw JSON, empty for none.
func CreatePlan(t *testing.T, repo plan.Repository, code, name, price, cycle, features string) plan.Plan {
	ts := time.Now().UTC()
	p := plan.Plan{
		PlanCode:     code,
		Name:         name,
		Description:  name + " plan",
		Price:        decimal.RequireFromString(price),
		BillingCycle: cycle,
		IsActive:     true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if features != "" {
		p.Features = null.JSONFrom([]byte(features))
	}
	p, err := repo.CreatePlan(context.Background(), p)
	if err != nil {
		t.Fatalf("CreatePlan() failed: %v", err)
	}
	p.Decode()
	return p
}

func CreateSubscription(
	t *testing.T,
	repo subscription.Repository,
	code string,
	sch school.School,
	p plan.Plan,
	status string,
	start core.Date,
	createdAt ...time.Time,
) subscription.Subscription {
	ts := tstamp(createdAt)
	sub, err := repo.CreateSubscription(context.Background(), subscription.Subscription{
		SubscriptionCode: code,
		SchoolID:         sch.ID,
		PlanID:           p.ID,
		BillingCycle:     p.BillingCycle,
		Amount:           p.Price,
		Status:           status,
		StartDate:        start,
		EndDate:          subscription.EndDate(start, p.BillingCycle),
		AutoRenew:        true,
		PaymentMethod:    "manual",
		TransactionID:    "TXN-" + code,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	})
	if err != nil {
		t.Fatalf("CreateSubscription() failed: %v", err)
	}
	return sub
}

func MustDate(t *testing.T, s string) core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("MustDate() failed: %v", err)
	}
	return d
}

// LoggerMock records logged messages by level.
type LoggerMock struct {
	mu       sync.Mutex
	Messages map[string][]string
}

var _ core.Logger = (*LoggerMock)(nil)

func NewLoggerMock() *LoggerMock {
	return &LoggerMock{Messages: make(map[string][]string)}
}

func (l *LoggerMock) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages[level] = append(l.Messages[level], msg)
}

// Logged returns the messages logged at level.
func (l *LoggerMock) Logged(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Messages[level]...)
}

func (l *LoggerMock) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *LoggerMock) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *LoggerMock) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *LoggerMock) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *LoggerMock) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }
