package exportapp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/shopspring/decimal"
)

// ProjectSource lists projects with their client preloaded
type ProjectSource interface {
	All(ctx context.Context, orgID uuid.UUID) ([]construction.Project, error)
}

type ClientSource interface {
	All(ctx context.Context, orgID uuid.UUID) ([]construction.Client, error)
}

type AccountSource interface {
	All(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error)
}

type JournalSource interface {
	All(ctx context.Context, orgID uuid.UUID) ([]accounting.JournalEntry, error)
}

type InspectionSource interface {
	All(ctx context.Context, orgID uuid.UUID) ([]construction.Inspection, error)
}

// Sources groups the scoped queries exports read from
type Sources struct {
	Projects    ProjectSource
	Clients     ClientSource
	Accounts    AccountSource
	Journal     JournalSource
	Inspections InspectionSource
}

const dateLayout = "02/01/2006"

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func (s *Service) projectsTable(ctx context.Context, orgID uuid.UUID) (*Table, error) {
	projects, err := s.sources.Projects.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Title:   "Obras",
		Columns: []string{"Código", "Nombre", "Cliente", "Estado", "Dirección", "Inicio", "Fin", "Presupuesto"},
		Rows:    make([][]string, 0, len(projects)),
	}
	for _, p := range projects {
		client := ""
		if p.Client != nil {
			client = p.Client.Name
		}
		t.Rows = append(t.Rows, []string{
			p.Code, p.Name, client, string(p.Status), p.Address,
			formatDate(p.StartDate), formatDate(p.EndDate), formatAmount(p.Budget),
		})
	}
	return t, nil
}

func (s *Service) clientsTable(ctx context.Context, orgID uuid.UUID) (*Table, error) {
	clients, err := s.sources.Clients.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Title:   "Clientes",
		Columns: []string{"Nombre", "CUIT", "Email", "Teléfono", "Dirección", "Ciudad"},
		Rows:    make([][]string, 0, len(clients)),
	}
	for _, c := range clients {
		t.Rows = append(t.Rows, []string{c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.City})
	}
	return t, nil
}

func (s *Service) accountsTable(ctx context.Context, orgID uuid.UUID) (*Table, error) {
	accounts, err := s.sources.Accounts.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	codes := accountCodes(accounts)
	t := &Table{
		Title:   "Plan de cuentas",
		Columns: []string{"Código", "Nombre", "Tipo", "Cuenta padre", "Estándar", "Activa"},
		Rows:    make([][]string, 0, len(accounts)),
	}
	for _, a := range accounts {
		parent := ""
		if a.ParentID != nil {
			parent = codes[*a.ParentID]
		}
		t.Rows = append(t.Rows, []string{
			a.Code, a.Name, string(a.Type), parent, yesNo(a.IsStandard), yesNo(a.IsActive),
		})
	}
	return t, nil
}

func (s *Service) journalTable(ctx context.Context, orgID uuid.UUID) (*Table, error) {
	entries, err := s.sources.Journal.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.sources.Accounts.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	codes := accountCodes(accounts)
	t := &Table{
		Title:   "Asientos contables",
		Columns: []string{"Fecha", "Descripción", "Referencia", "Debe", "Haber", "Importe", "Moneda"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			formatDate(&e.Date), e.Description, e.Reference,
			codes[e.DebitAccountID], codes[e.CreditAccountID],
			formatAmount(e.Amount), e.Currency,
		})
	}
	return t, nil
}

func (s *Service) inspectionsTable(ctx context.Context, orgID uuid.UUID) (*Table, error) {
	inspections, err := s.sources.Inspections.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	projects, err := s.sources.Projects.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	t := &Table{
		Title:   "Inspecciones",
		Columns: []string{"Obra", "Título", "Tipo", "Estado", "Prioridad", "Inspector", "Fecha", "Observaciones"},
		Rows:    make([][]string, 0, len(inspections)),
	}
	for _, in := range inspections {
		t.Rows = append(t.Rows, []string{
			names[in.ProjectID], in.Title, string(in.Type), string(in.Status), string(in.Priority),
			in.Inspector, formatDate(&in.ScheduledDate), in.Findings,
		})
	}
	return t, nil
}

func accountCodes(accounts []accounting.Account) map[uuid.UUID]string {
	codes := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		codes[a.ID] = a.Code
	}
	return codes
}
