package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func withCommonSortFields(fields ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

var (
	ClientSortFields       = withCommonSortFields("name", "tax_id", "city")
	ProjectSortFields      = withCommonSortFields("code", "name", "status", "start_date", "end_date", "budget")
	BudgetItemSortFields   = withCommonSortFields("description", "amount", "executed")
	EmployeeSortFields     = withCommonSortFields("last_name", "first_name", "position", "status", "hire_date", "daily_rate")
	ProviderSortFields     = withCommonSortFields("name", "tax_id", "category")
	InvoiceSortFields      = withCommonSortFields("number", "kind", "status", "issue_date", "due_date", "amount")
	InspectionSortFields   = withCommonSortFields("title", "type", "status", "priority", "scheduled_date")
	RubroSortFields        = withCommonSortFields("code", "name", "type")
	AccountSortFields      = withCommonSortFields("code", "name", "type")
	JournalEntrySortFields = withCommonSortFields("date", "amount", "reference")
	ExchangeRateSortFields = withCommonSortFields("date", "from_currency", "to_currency", "rate")
	UserSortFields         = withCommonSortFields("email", "name", "role", "last_login_at")
	OrganizationSortFields = withCommonSortFields("name", "currency")
)
