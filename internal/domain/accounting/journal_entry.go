package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Scale of stored amounts and rates, matching the decimal columns
const (
	AmountPrecision = 4
	RatePrecision   = 6
)

// JournalEntry is a double-sided accounting record: Amount is debited to
// DebitAccountID and credited to CreditAccountID.
type JournalEntry struct {
	shared.OrgEntity
	Date            time.Time       `gorm:"type:date;not null;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Reference       string          `gorm:"type:varchar(100)"`
	DebitAccountID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	ProjectID       *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry validates and builds an entry
func NewJournalEntry(
	orgID uuid.UUID,
	date time.Time,
	description string,
	debitAccountID, creditAccountID uuid.UUID,
	amount decimal.Decimal,
	currency string,
) (*JournalEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.Validation("INVALID_DESCRIPTION", "journal entry description cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.Validation("INVALID_DATE", "journal entry date is required")
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return nil, shared.Validation("INVALID_ACCOUNT", "debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return nil, shared.Validation("SAME_DEBIT_CREDIT", "debit and credit accounts must differ")
	}
	amount = amount.Round(AmountPrecision)
	if !amount.IsPositive() {
		return nil, shared.Validation("INVALID_AMOUNT", "amount must be greater than zero")
	}
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	return &JournalEntry{
		OrgEntity:       shared.NewOrgEntity(orgID),
		Date:            date,
		Description:     description,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          amount,
		Currency:        currency,
	}, nil
}

// References reports whether the entry touches accountID on either side
func (e *JournalEntry) References(accountID uuid.UUID) bool {
	return e.DebitAccountID == accountID || e.CreditAccountID == accountID
}

func normalizeCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "", shared.Validation("INVALID_CURRENCY", "currency must be a 3-letter code, got %q", c)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", shared.Validation("INVALID_CURRENCY", "currency must be a 3-letter code, got %q", c)
		}
	}
	return c, nil
}
