package accounting

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
)

// maxAccountDepth bounds the parent walk used for cycle detection
const maxAccountDepth = 64

// CreateAccountInput holds the fields of a new account. Type accepts a
// canonical token or a localized label.
type CreateAccountInput struct {
	Code        string
	Name        string
	Type        string
	ParentID    *uuid.UUID
	ParentCode  string
	Description string
}

// UpdateAccountInput holds optional changes to an account
type UpdateAccountInput struct {
	Code        *string
	Name        *string
	Type        *string
	ParentID    *uuid.UUID
	ClearParent bool
	Description *string
	IsActive    *bool
}

// AccountNode is one node of the chart tree
type AccountNode struct {
	accounting.Account
	Children []*AccountNode
}

// AccountService manages the chart of accounts
type AccountService struct {
	accounts accounting.AccountRepository
	journals accounting.JournalEntryRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts accounting.AccountRepository, journals accounting.JournalEntryRepository) *AccountService {
	return &AccountService{accounts: accounts, journals: journals}
}

// Create adds an account. The code must be unique in the organization and
// the parent, given by id or code, must belong to it.
func (s *AccountService) Create(ctx context.Context, orgID uuid.UUID, in CreateAccountInput) (*accounting.Account, error) {
	accountType, err := mapAccountType(in.Type)
	if err != nil {
		return nil, err
	}

	parentID, err := s.resolveParent(ctx, orgID, in.ParentID, in.ParentCode)
	if err != nil {
		return nil, err
	}

	account, err := accounting.NewAccount(orgID, in.Code, in.Name, accountType, parentID)
	if err != nil {
		return nil, err
	}
	account.SetDescription(in.Description)

	if err := s.ensureCodeFree(ctx, orgID, account.Code, nil); err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if shared.IsKind(err, shared.KindConflict) {
			return nil, duplicateCode(account.Code)
		}
		return nil, err
	}
	return account, nil
}

// Update applies changes to an account, rejecting self parents, cycles and
// duplicate codes
func (s *AccountService) Update(ctx context.Context, orgID, id uuid.UUID, in UpdateAccountInput) (*accounting.Account, error) {
	account, err := s.accounts.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if in.Code != nil || in.Name != nil {
		code, name := account.Code, account.Name
		if in.Code != nil {
			code = *in.Code
		}
		if in.Name != nil {
			name = *in.Name
		}
		if err := account.Rename(code, name); err != nil {
			return nil, err
		}
		if err := s.ensureCodeFree(ctx, orgID, account.Code, &account.ID); err != nil {
			return nil, err
		}
	}

	if in.Type != nil {
		accountType, err := mapAccountType(*in.Type)
		if err != nil {
			return nil, err
		}
		if err := account.ChangeType(accountType); err != nil {
			return nil, err
		}
	}

	switch {
	case in.ClearParent:
		_ = account.SetParent(nil)
	case in.ParentID != nil:
		if err := account.SetParent(in.ParentID); err != nil {
			return nil, err
		}
		if err := s.checkParentChain(ctx, orgID, account.ID, *in.ParentID); err != nil {
			return nil, err
		}
	}

	if in.Description != nil {
		account.SetDescription(*in.Description)
	}
	if in.IsActive != nil {
		account.SetActive(*in.IsActive)
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		if shared.IsKind(err, shared.KindConflict) {
			return nil, duplicateCode(account.Code)
		}
		return nil, err
	}
	return account, nil
}

// Delete removes an account that has no children and no journal entries
func (s *AccountService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.accounts.FindByIDForOrg(ctx, orgID, id); err != nil {
		return err
	}

	children, err := s.accounts.CountChildren(ctx, orgID, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return shared.Validation(accounting.CodeAccountHasChildren,
			"account has %d child accounts and cannot be deleted", children)
	}

	entries, err := s.journals.CountReferencing(ctx, orgID, id)
	if err != nil {
		return err
	}
	if entries > 0 {
		return shared.Validation(accounting.CodeAccountHasEntries,
			"account is used by %d journal entries and cannot be deleted", entries)
	}

	return s.accounts.DeleteForOrg(ctx, orgID, id)
}

// Get returns one account
func (s *AccountService) Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.Account, error) {
	return s.accounts.FindByIDForOrg(ctx, orgID, id)
}

// List returns a page of accounts
func (s *AccountService) List(ctx context.Context, orgID uuid.UUID, filter accounting.AccountFilter) (shared.Paginated[accounting.Account], error) {
	filter.Filter = filter.Filter.Normalize()
	items, total, err := s.accounts.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return shared.Paginated[accounting.Account]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// All returns every account ordered by code
func (s *AccountService) All(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error) {
	return s.accounts.ListForOrg(ctx, orgID)
}

// Tree returns the chart as a forest ordered by code. Accounts whose parent
// is missing are treated as roots.
func (s *AccountService) Tree(ctx context.Context, orgID uuid.UUID) ([]*AccountNode, error) {
	accounts, err := s.accounts.ListForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return BuildTree(accounts), nil
}

// BuildTree nests accounts under their parents
func BuildTree(accounts []accounting.Account) []*AccountNode {
	nodes := make(map[uuid.UUID]*AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].ID] = &AccountNode{Account: accounts[i]}
	}

	var roots []*AccountNode
	for i := range accounts {
		node := nodes[accounts[i].ID]
		if pid := accounts[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortNodes func([]*AccountNode)
	sortNodes = func(list []*AccountNode) {
		sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
		for _, n := range list {
			sortNodes(n.Children)
		}
	}
	sortNodes(roots)
	return roots
}

func (s *AccountService) resolveParent(ctx context.Context, orgID uuid.UUID, parentID *uuid.UUID, parentCode string) (*uuid.UUID, error) {
	switch {
	case parentID != nil:
		if _, err := s.accounts.FindByIDForOrg(ctx, orgID, *parentID); err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				return nil, shared.Validation(accounting.CodeAccountInvalidParent, "parent account does not exist")
			}
			return nil, err
		}
		return parentID, nil
	case parentCode != "":
		parent, err := s.accounts.FindByCode(ctx, orgID, parentCode)
		if err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				return nil, shared.Validation(accounting.CodeAccountInvalidParent, "parent account %q does not exist", parentCode)
			}
			return nil, err
		}
		return &parent.ID, nil
	default:
		return nil, nil
	}
}

// checkParentChain walks up from parentID and fails when it reaches id
func (s *AccountService) checkParentChain(ctx context.Context, orgID, id, parentID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < maxAccountDepth; depth++ {
		parent, err := s.accounts.FindByIDForOrg(ctx, orgID, current)
		if err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				return shared.Validation(accounting.CodeAccountInvalidParent, "parent account does not exist")
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return shared.Validation(accounting.CodeAccountCycle, "the new parent would create a cycle in the chart")
		}
		current = *parent.ParentID
	}
	return shared.Validation(accounting.CodeAccountCycle, "account hierarchy is too deep")
}

func (s *AccountService) ensureCodeFree(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) error {
	exists, err := s.accounts.ExistsByCode(ctx, orgID, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateCode(code)
	}
	return nil
}

func duplicateCode(code string) error {
	return shared.Conflict(accounting.CodeAccountDuplicateCode, "account code %q already exists", code)
}

func mapAccountType(label string) (accounting.AccountType, error) {
	token, err := localization.AccountType.MapRequired(label)
	if err != nil {
		return "", err
	}
	return accounting.AccountType(token), nil
}
