package inmemdb

import (
	"sync"

	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/school"
	"github.com/trezcool/trackx/core/subscription"
)

// DB keeps every table in memory. A single lock guards all tables so joins see a consistent state.
type DB struct {
	mutex sync.RWMutex

	school       map[int64]*school.School
	plan         map[int64]*plan.Plan
	subscription map[int64]*subscription.Subscription
	invoice      map[int64]*subscription.Invoice

	pkCount map[string]int64
}

func Open() *DB {
	return &DB{
		school:       make(map[int64]*school.School),
		plan:         make(map[int64]*plan.Plan),
		subscription: make(map[int64]*subscription.Subscription),
		invoice:      make(map[int64]*subscription.Invoice),
		pkCount:      make(map[string]int64),
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.school = make(map[int64]*school.School)
	db.plan = make(map[int64]*plan.Plan)
	db.subscription = make(map[int64]*subscription.Subscription)
	db.invoice = make(map[int64]*subscription.Invoice)
	db.pkCount = make(map[string]int64)
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK(table string) int64 {
	db.pkCount[table]++
	return db.pkCount[table]
}
