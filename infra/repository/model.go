package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Participant is the subset of the platform's participants table these tasks touch.
type Participant struct {
	ID       int64           `gorm:"primaryKey"`
	Username string          `gorm:"uniqueIndex;not null"`
	Balance  decimal.Decimal `gorm:"type:numeric(35,2);not null"`
	APIKey   *string         `gorm:"column:api_key"`
}

// TableName specifies the table name for the Participant model.
func (Participant) TableName() string {
	return "participants"
}

// ExchangeRoute is a payout destination row.
type ExchangeRoute struct {
	ID          int64               `gorm:"primaryKey"`
	Participant int64               `gorm:"column:participant;not null"`
	Network     string              `gorm:"not null"`
	Address     string              `gorm:"not null"`
	FeeCap      decimal.NullDecimal `gorm:"column:fee_cap;type:numeric(35,2)"`
}

// TableName specifies the table name for the ExchangeRoute model.
func (ExchangeRoute) TableName() string {
	return "exchange_routes"
}

// Exchange is an append-only ledger row.
type Exchange struct {
	ID          int64           `gorm:"primaryKey"`
	Timestamp   time.Time       `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(35,2);not null"`
	Fee         decimal.Decimal `gorm:"type:numeric(35,2);not null"`
	Participant string          `gorm:"not null"`
	Note        string
	Status      string `gorm:"not null"`
	Route       int64  `gorm:"column:route"`
}

// TableName specifies the table name for the Exchange model.
func (Exchange) TableName() string {
	return "exchanges"
}
