package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// AccountType is the fundamental accounting class of an account
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// AllAccountTypes returns the account types in chart order
func AllAccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeLiability,
		AccountTypeEquity,
		AccountTypeIncome,
		AccountTypeExpense,
	}
}

// IsValid reports whether t is a known account type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type increases with debits
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Error codes
const (
	CodeAccountSelfParent    = "ACCOUNT_SELF_PARENT"
	CodeAccountCycle         = "ACCOUNT_PARENT_CYCLE"
	CodeAccountHasChildren   = "ACCOUNT_HAS_CHILDREN"
	CodeAccountHasEntries    = "ACCOUNT_HAS_JOURNAL_ENTRIES"
	CodeAccountDuplicateCode = "ACCOUNT_DUPLICATE_CODE"
	CodeAccountInvalidCode   = "INVALID_ACCOUNT_CODE"
	CodeAccountInvalidName   = "INVALID_ACCOUNT_NAME"
	CodeAccountInvalidType   = "INVALID_ACCOUNT_TYPE"
	CodeAccountInvalidParent = "INVALID_PARENT_ACCOUNT"
)

// Account is a node in an organization's chart of accounts
type Account struct {
	shared.BaseEntity
	OrganizationID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_org_code,priority:1"`
	Code           string      `gorm:"type:varchar(30);not null;uniqueIndex:idx_accounts_org_code,priority:2"`
	Name           string      `gorm:"type:varchar(200);not null"`
	Type           AccountType `gorm:"type:varchar(20);not null"`
	ParentID       *uuid.UUID  `gorm:"type:uuid;index"`
	Description    string      `gorm:"type:text"`
	IsStandard     bool        `gorm:"not null;default:false"`
	IsActive       bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a custom (non-standard) account
func NewAccount(orgID uuid.UUID, code, name string, accountType AccountType, parentID *uuid.UUID) (*Account, error) {
	code = strings.TrimSpace(code)
	if err := validateAccountCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateAccountName(name); err != nil {
		return nil, err
	}
	if !accountType.IsValid() {
		return nil, shared.Validation(CodeAccountInvalidType, "invalid account type: %q", accountType)
	}

	a := &Account{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: orgID,
		Code:           code,
		Name:           name,
		Type:           accountType,
		IsActive:       true,
	}
	if err := a.SetParent(parentID); err != nil {
		return nil, err
	}
	return a, nil
}

// BelongsTo reports whether the account is owned by orgID
func (a *Account) BelongsTo(orgID uuid.UUID) bool {
	return a.OrganizationID == orgID
}

// SetParent assigns the parent account. Hierarchy checks that need other
// accounts (existence, cycles) are done by the service.
func (a *Account) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == a.ID {
		return shared.Validation(CodeAccountSelfParent, "an account cannot be its own parent")
	}
	a.ParentID = parentID
	a.Touch()
	return nil
}

// Rename changes code and name
func (a *Account) Rename(code, name string) error {
	code = strings.TrimSpace(code)
	if err := validateAccountCode(code); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := validateAccountName(name); err != nil {
		return err
	}
	a.Code = code
	a.Name = name
	a.Touch()
	return nil
}

// ChangeType sets the account type
func (a *Account) ChangeType(t AccountType) error {
	if !t.IsValid() {
		return shared.Validation(CodeAccountInvalidType, "invalid account type: %q", t)
	}
	a.Type = t
	a.Touch()
	return nil
}

// SetDescription sets the free-text description
func (a *Account) SetDescription(desc string) {
	a.Description = strings.TrimSpace(desc)
	a.Touch()
}

// SetActive toggles the active flag
func (a *Account) SetActive(active bool) {
	a.IsActive = active
	a.Touch()
}

// MaxAccountCodeLength matches the accounts.code column
const MaxAccountCodeLength = 30

func validateAccountCode(code string) error {
	if code == "" {
		return shared.Validation(CodeAccountInvalidCode, "account code cannot be empty")
	}
	if len(code) > MaxAccountCodeLength {
		return shared.Validation(CodeAccountInvalidCode, "account code cannot exceed %d characters", MaxAccountCodeLength)
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && r != '.' && r != '-' {
			return shared.Validation(CodeAccountInvalidCode, "account code %q may only contain letters, digits, dots and hyphens", code)
		}
	}
	return nil
}

func validateAccountName(name string) error {
	if name == "" {
		return shared.Validation(CodeAccountInvalidName, "account name cannot be empty")
	}
	if len(name) > 200 {
		return shared.Validation(CodeAccountInvalidName, "account name cannot exceed 200 characters")
	}
	return nil
}
