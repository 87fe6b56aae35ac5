package accounting

import (
	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// ChartEntry describes one account of the standard chart. Key is the
// logical name callers use to find the generated account.
type ChartEntry struct {
	Key       string
	Code      string
	Name      string
	Type      AccountType
	ParentKey string
}

// standardChart lists parents before children
var standardChart = []ChartEntry{
	{Key: "assets", Code: "1", Name: "Activo", Type: AccountTypeAsset},
	{Key: "current_assets", Code: "1.1", Name: "Activo Corriente", Type: AccountTypeAsset, ParentKey: "assets"},
	{Key: "cash", Code: "1.1.01", Name: "Caja", Type: AccountTypeAsset, ParentKey: "current_assets"},
	{Key: "banks", Code: "1.1.02", Name: "Bancos", Type: AccountTypeAsset, ParentKey: "current_assets"},
	{Key: "receivables", Code: "1.1.03", Name: "Cuentas por Cobrar", Type: AccountTypeAsset, ParentKey: "current_assets"},
	{Key: "materials_inventory", Code: "1.1.04", Name: "Inventario de Materiales", Type: AccountTypeAsset, ParentKey: "current_assets"},
	{Key: "work_in_progress", Code: "1.1.05", Name: "Obras en Ejecución", Type: AccountTypeAsset, ParentKey: "current_assets"},
	{Key: "non_current_assets", Code: "1.2", Name: "Activo No Corriente", Type: AccountTypeAsset, ParentKey: "assets"},
	{Key: "machinery", Code: "1.2.01", Name: "Maquinaria y Equipos", Type: AccountTypeAsset, ParentKey: "non_current_assets"},
	{Key: "vehicles", Code: "1.2.02", Name: "Rodados", Type: AccountTypeAsset, ParentKey: "non_current_assets"},
	{Key: "accumulated_depreciation", Code: "1.2.03", Name: "Amortización Acumulada", Type: AccountTypeAsset, ParentKey: "non_current_assets"},

	{Key: "liabilities", Code: "2", Name: "Pasivo", Type: AccountTypeLiability},
	{Key: "current_liabilities", Code: "2.1", Name: "Pasivo Corriente", Type: AccountTypeLiability, ParentKey: "liabilities"},
	{Key: "payables", Code: "2.1.01", Name: "Proveedores", Type: AccountTypeLiability, ParentKey: "current_liabilities"},
	{Key: "salaries_payable", Code: "2.1.02", Name: "Sueldos a Pagar", Type: AccountTypeLiability, ParentKey: "current_liabilities"},
	{Key: "taxes_payable", Code: "2.1.03", Name: "Impuestos a Pagar", Type: AccountTypeLiability, ParentKey: "current_liabilities"},
	{Key: "client_advances", Code: "2.1.04", Name: "Anticipos de Clientes", Type: AccountTypeLiability, ParentKey: "current_liabilities"},
	{Key: "non_current_liabilities", Code: "2.2", Name: "Pasivo No Corriente", Type: AccountTypeLiability, ParentKey: "liabilities"},
	{Key: "bank_loans", Code: "2.2.01", Name: "Préstamos Bancarios", Type: AccountTypeLiability, ParentKey: "non_current_liabilities"},

	{Key: "equity", Code: "3", Name: "Patrimonio Neto", Type: AccountTypeEquity},
	{Key: "capital", Code: "3.1", Name: "Capital Social", Type: AccountTypeEquity, ParentKey: "equity"},
	{Key: "retained_earnings", Code: "3.2", Name: "Resultados Acumulados", Type: AccountTypeEquity, ParentKey: "equity"},

	{Key: "income", Code: "4", Name: "Ingresos", Type: AccountTypeIncome},
	{Key: "construction_income", Code: "4.1", Name: "Ingresos por Obras", Type: AccountTypeIncome, ParentKey: "income"},
	{Key: "other_income", Code: "4.2", Name: "Otros Ingresos", Type: AccountTypeIncome, ParentKey: "income"},

	{Key: "expenses", Code: "5", Name: "Gastos", Type: AccountTypeExpense},
	{Key: "construction_costs", Code: "5.1", Name: "Costos de Obra", Type: AccountTypeExpense, ParentKey: "expenses"},
	{Key: "materials_cost", Code: "5.1.01", Name: "Materiales", Type: AccountTypeExpense, ParentKey: "construction_costs"},
	{Key: "labor_cost", Code: "5.1.02", Name: "Mano de Obra", Type: AccountTypeExpense, ParentKey: "construction_costs"},
	{Key: "subcontracts_cost", Code: "5.1.03", Name: "Subcontratos", Type: AccountTypeExpense, ParentKey: "construction_costs"},
	{Key: "equipment_rental", Code: "5.1.04", Name: "Alquiler de Equipos", Type: AccountTypeExpense, ParentKey: "construction_costs"},
	{Key: "admin_expenses", Code: "5.2", Name: "Gastos Administrativos", Type: AccountTypeExpense, ParentKey: "expenses"},
	{Key: "admin_salaries", Code: "5.2.01", Name: "Sueldos Administrativos", Type: AccountTypeExpense, ParentKey: "admin_expenses"},
	{Key: "utilities", Code: "5.2.02", Name: "Servicios", Type: AccountTypeExpense, ParentKey: "admin_expenses"},
	{Key: "financial_expenses", Code: "5.3", Name: "Gastos Financieros", Type: AccountTypeExpense, ParentKey: "expenses"},
}

// StandardChart returns a copy of the standard chart definition
func StandardChart() []ChartEntry {
	out := make([]ChartEntry, len(standardChart))
	copy(out, standardChart)
	return out
}

// StandardChartKeyByCode maps a standard account code back to its key
func StandardChartKeyByCode() map[string]string {
	out := make(map[string]string, len(standardChart))
	for _, e := range standardChart {
		out[e.Code] = e.Key
	}
	return out
}

// BuildStandardAccounts instantiates the standard chart for orgID. The
// returned slice is in insertion order (parents first) and ids maps each
// chart key to the generated account id.
func BuildStandardAccounts(orgID uuid.UUID) (accounts []*Account, ids map[string]uuid.UUID, err error) {
	accounts = make([]*Account, 0, len(standardChart))
	ids = make(map[string]uuid.UUID, len(standardChart))

	for _, e := range standardChart {
		var parentID *uuid.UUID
		if e.ParentKey != "" {
			pid, ok := ids[e.ParentKey]
			if !ok {
				return nil, nil, shared.Internal("standard chart parent "+e.ParentKey+" declared after "+e.Key, nil)
			}
			parentID = &pid
		}
		a, err := NewAccount(orgID, e.Code, e.Name, e.Type, parentID)
		if err != nil {
			return nil, nil, err
		}
		a.IsStandard = true
		accounts = append(accounts, a)
		ids[e.Key] = a.ID
	}
	return accounts, ids, nil
}

// ChartStats aggregates the accounting data of one organization
type ChartStats struct {
	TotalAccounts    int64                 `json:"totalAccounts"`
	StandardAccounts int64                 `json:"standardAccounts"`
	CustomAccounts   int64                 `json:"customAccounts"`
	JournalEntries   int64                 `json:"journalEntries"`
	ExchangeRates    int64                 `json:"exchangeRates"`
	AccountsByType   map[AccountType]int64 `json:"accountsByType"`
}
