package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	*GormOrgRepository[accounting.ExchangeRate]
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{newGormOrgRepository[accounting.ExchangeRate](db, orgTableOptions{
		resource:      "exchange rate",
		searchColumns: []string{"from_currency", "to_currency"},
		sortFields:    ExchangeRateSortFields,
		defaultOrder:  "date",
		filter:        equalityFilter("from_currency", "to_currency"),
	})}
}

// FindLatest returns the most recent from->to rate dated on or before date
func (r *GormExchangeRateRepository) FindLatest(ctx context.Context, orgID uuid.UUID, from, to string, date time.Time) (*accounting.ExchangeRate, error) {
	var rate accounting.ExchangeRate
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("from_currency = ? AND to_currency = ? AND date <= ?",
			strings.ToUpper(from), strings.ToUpper(to), date).
		Order("date DESC, created_at DESC").
		First(&rate).Error
	if err != nil {
		return nil, translateError(err, "exchange rate")
	}
	return &rate, nil
}

// DeleteAllForOrg removes every rate of the organization
func (r *GormExchangeRateRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(OrgScope(orgID)).Delete(&accounting.ExchangeRate{})
	return result.RowsAffected, result.Error
}

var (
	_ accounting.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
	_ shared.OrgRepository[accounting.ExchangeRate] = (*GormExchangeRateRepository)(nil)
)
