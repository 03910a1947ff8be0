package models_test

import (
	"sync"
	"testing"
	"time"

	"Litreview/api/database/dbtest"
	"Litreview/api/models"
	"Litreview/api/security"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	security.SetCost(bcrypt.MinCost)
	return dbtest.NewDB(t)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "testpass123"}
	u.Prepare()
	_, err := u.SaveUser(db)
	require.NoError(t, err)
	return u
}

func createTicket(t *testing.T, db *gorm.DB, owner *models.User, title string, at time.Time) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{Title: title, UserID: owner.ID, TimeCreated: at}
	_, err := ticket.SaveTicket(db)
	require.NoError(t, err)
	return ticket
}

// insertBeforeCreate runs query once, on the same connection, right before
// the next INSERT into table. It reproduces a concurrent writer landing
// between a pre-check and the insert that follows it.
func insertBeforeCreate(t *testing.T, db *gorm.DB, table, query string, args ...interface{}) {
	t.Helper()
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_insert", func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		once.Do(func() {
			_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, query, args...)
			require.NoError(t, err)
		})
	})
	require.NoError(t, err)
}

// runConcurrently calls fn from n goroutines and returns their errors.
func runConcurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	return errs
}
