package construction

import (
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetItem is a planned cost line of a project, optionally tagged with
// a rubro. Executed tracks what has been spent so far.
type BudgetItem struct {
	shared.OrgEntity
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	RubroID     *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(300);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Executed    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BudgetItem) TableName() string {
	return "budget_items"
}

// NewBudgetItem creates a budget line with nothing executed
func NewBudgetItem(orgID, projectID uuid.UUID, rubroID *uuid.UUID, description string, amount decimal.Decimal) (*BudgetItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.Validation("INVALID_DESCRIPTION", "budget item description cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.Validation("INVALID_AMOUNT", "budget amount cannot be negative")
	}
	return &BudgetItem{
		OrgEntity:   shared.NewOrgEntity(orgID),
		ProjectID:   projectID,
		RubroID:     rubroID,
		Description: description,
		Amount:      amount,
		Executed:    decimal.Zero,
	}, nil
}

// SetExecuted records the executed amount
func (b *BudgetItem) SetExecuted(executed decimal.Decimal) error {
	if executed.IsNegative() {
		return shared.Validation("INVALID_AMOUNT", "executed amount cannot be negative")
	}
	b.Executed = executed
	b.Touch()
	return nil
}

// SetDescription renames the line
func (b *BudgetItem) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.Validation("INVALID_DESCRIPTION", "budget item description cannot be empty")
	}
	b.Description = description
	b.Touch()
	return nil
}

// SetAmount changes the planned amount
func (b *BudgetItem) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.Validation("INVALID_AMOUNT", "budget amount cannot be negative")
	}
	b.Amount = amount
	b.Touch()
	return nil
}

// Progress is derived budget arithmetic, never stored
type Progress struct {
	Amount    decimal.Decimal
	Executed  decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal
}

// ComputeProgress returns remaining = amount - executed and
// percent = executed / amount * 100 rounded to 2 places (0 when amount is 0)
func ComputeProgress(amount, executed decimal.Decimal) Progress {
	p := Progress{
		Amount:    amount,
		Executed:  executed,
		Remaining: amount.Sub(executed),
		Percent:   decimal.Zero,
	}
	if !amount.IsZero() {
		p.Percent = executed.Div(amount).Mul(hundred).Round(2)
	}
	return p
}

// Progress computes the line's progress
func (b *BudgetItem) Progress() Progress {
	return ComputeProgress(b.Amount, b.Executed)
}

// SummarizeBudget aggregates a project's lines into one progress figure
func SummarizeBudget(items []BudgetItem) Progress {
	amount, executed := decimal.Zero, decimal.Zero
	for _, it := range items {
		amount = amount.Add(it.Amount)
		executed = executed.Add(it.Executed)
	}
	return ComputeProgress(amount, executed)
}
