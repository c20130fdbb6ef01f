package gormrepo

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (decimals kept as exact text) ---

type loanSQLite struct {
	ID               uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID           string     `gorm:"size:32;uniqueIndex;column:loan_id"`
	UserID           string     `gorm:"size:64;column:user_id"`
	Amount           string     `gorm:"type:text;column:amount"`
	InterestRate     string     `gorm:"type:text;column:interest_rate"`
	Status           string     `gorm:"type:text;column:status"`
	Type             string     `gorm:"type:text;column:loan_type"`
	TermMonths       *int       `gorm:"column:term_months"`
	InstallmentValue *string    `gorm:"type:text;column:installment_value"`
	PaymentFrequency *string    `gorm:"type:text;column:payment_frequency"`
	RemainingBalance string     `gorm:"type:text;column:remaining_balance"`
	InterestArrears  string     `gorm:"type:text;column:interest_arrears"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	ApprovedAt       *time.Time `gorm:"column:approved_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID                uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	PaymentID         string    `gorm:"size:32;uniqueIndex;column:payment_id"`
	LoanID            string    `gorm:"size:32;column:loan_id"`
	Date              time.Time `gorm:"column:payment_date"`
	Manual            bool      `gorm:"column:manual"`
	AmountTendered    string    `gorm:"type:text;column:amount_tendered"`
	AmountPaid        string    `gorm:"type:text;column:amount_paid"`
	InterestCharged   string    `gorm:"type:text;column:interest_charged"`
	CapitalPayment    string    `gorm:"type:text;column:capital_payment"`
	InterestShortfall string    `gorm:"type:text;column:interest_shortfall"`
	RemainingBalance  string    `gorm:"type:text;column:remaining_balance"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type loanTypeSQLite struct {
	ID          string `gorm:"primaryKey;column:id"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (loanTypeSQLite) TableName() string { return "loan_types" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}, &loanTypeSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
