package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExchangeRate records how many units of ToCurrency one unit of
// FromCurrency buys on Date.
type ExchangeRate struct {
	shared.OrgEntity
	FromCurrency string          `gorm:"type:varchar(3);not null"`
	ToCurrency   string          `gorm:"type:varchar(3);not null"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Date         time.Time       `gorm:"type:date;not null;index"`
}

// TableName returns the table name for GORM
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// NewExchangeRate validates and builds a rate
func NewExchangeRate(orgID uuid.UUID, from, to string, rate decimal.Decimal, date time.Time) (*ExchangeRate, error) {
	from, err := normalizeCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = normalizeCurrency(to)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, shared.Validation("SAME_CURRENCY", "from and to currencies must differ")
	}
	rate = rate.Round(RatePrecision)
	if !rate.IsPositive() {
		return nil, shared.Validation("INVALID_RATE", "rate must be greater than zero")
	}
	if date.IsZero() {
		return nil, shared.Validation("INVALID_DATE", "rate date is required")
	}
	return &ExchangeRate{
		OrgEntity:    shared.NewOrgEntity(orgID),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Date:         date,
	}, nil
}

// Convert converts an amount in FromCurrency to ToCurrency
func (r *ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate).Round(AmountPrecision)
}
