package importapp

import (
	"context"
	"io"

	"github.com/google/uuid"
	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	appconstruction "github.com/obraerp/backend/internal/application/construction"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/infrastructure/spreadsheet"
)

// ClientCreator is satisfied by the construction ClientService
type ClientCreator interface {
	Create(ctx context.Context, orgID uuid.UUID, req appconstruction.ClientRequest) (*appconstruction.ClientResponse, error)
}

// AccountCreator is satisfied by the accounting AccountService
type AccountCreator interface {
	Create(ctx context.Context, orgID uuid.UUID, in appaccounting.CreateAccountInput) (*accounting.Account, error)
}

// RubroCreator is satisfied by the construction RubroService
type RubroCreator interface {
	Create(ctx context.Context, orgID uuid.UUID, req appconstruction.RubroRequest) (*appconstruction.RubroResponse, error)
}

var clientSchema = spreadsheet.Schema{
	{Key: "name", Aliases: []string{"nombre", "razon social", "cliente"}, Required: true},
	{Key: "tax_id", Aliases: []string{"cuit", "cuil", "rut", "nif", "tax id"}},
	{Key: "email", Aliases: []string{"correo", "mail", "e-mail"}},
	{Key: "phone", Aliases: []string{"telefono", "tel", "celular"}},
	{Key: "address", Aliases: []string{"direccion", "domicilio"}},
	{Key: "city", Aliases: []string{"ciudad", "localidad"}},
	{Key: "notes", Aliases: []string{"notas", "observaciones"}},
}

var clientRules = []spreadsheet.FieldRule{
	spreadsheet.Field("name").Required().MaxLength(200).Build(),
	spreadsheet.Field("tax_id").MaxLength(50).Unique().Build(),
	spreadsheet.Field("email").Email().MaxLength(200).Build(),
	spreadsheet.Field("phone").MaxLength(50).Build(),
	spreadsheet.Field("city").MaxLength(100).Build(),
}

// ImportClients creates one client per row
func (s *Service) ImportClients(ctx context.Context, orgID uuid.UUID, src io.Reader) (*Result, error) {
	return s.run(ctx, "clients", orgID, src, clientSchema, clientRules,
		func(ctx context.Context, orgID uuid.UUID, row *spreadsheet.Row) error {
			_, err := s.clients.Create(ctx, orgID, appconstruction.ClientRequest{
				Name:    row.Get("name"),
				TaxID:   row.Get("tax_id"),
				Email:   row.Get("email"),
				Phone:   row.Get("phone"),
				Address: row.Get("address"),
				City:    row.Get("city"),
				Notes:   row.Get("notes"),
			})
			return err
		})
}

var accountSchema = spreadsheet.Schema{
	{Key: "code", Aliases: []string{"codigo", "cuenta", "nro cuenta"}, Required: true},
	{Key: "name", Aliases: []string{"nombre", "descripcion cuenta"}, Required: true},
	{Key: "type", Aliases: []string{"tipo", "tipo de cuenta"}, Required: true},
	{Key: "parent_code", Aliases: []string{"cuenta padre", "codigo padre", "padre", "parent"}},
	{Key: "description", Aliases: []string{"descripcion", "detalle"}},
}

var accountRules = []spreadsheet.FieldRule{
	spreadsheet.Field("code").Required().MaxLength(accounting.MaxAccountCodeLength).Unique().Build(),
	spreadsheet.Field("name").Required().MaxLength(200).Build(),
	spreadsheet.Field("type").Required().Custom(knownLabel(localization.AccountType)).Build(),
	spreadsheet.Field("parent_code").MaxLength(accounting.MaxAccountCodeLength).Build(),
}

// ImportAccounts creates one account per row. Parents are resolved by
// code, so a parent must appear in an earlier row or already exist.
func (s *Service) ImportAccounts(ctx context.Context, orgID uuid.UUID, src io.Reader) (*Result, error) {
	return s.run(ctx, "accounts", orgID, src, accountSchema, accountRules,
		func(ctx context.Context, orgID uuid.UUID, row *spreadsheet.Row) error {
			_, err := s.accounts.Create(ctx, orgID, appaccounting.CreateAccountInput{
				Code:        row.Get("code"),
				Name:        row.Get("name"),
				Type:        row.Get("type"),
				ParentCode:  row.Get("parent_code"),
				Description: row.Get("description"),
			})
			return err
		})
}

var rubroSchema = spreadsheet.Schema{
	{Key: "code", Aliases: []string{"codigo"}, Required: true},
	{Key: "name", Aliases: []string{"nombre", "rubro"}, Required: true},
	{Key: "type", Aliases: []string{"tipo"}, Required: true},
	{Key: "unit", Aliases: []string{"unidad", "u medida", "unidad de medida"}},
	{Key: "description", Aliases: []string{"descripcion", "detalle"}},
}

var rubroRules = []spreadsheet.FieldRule{
	spreadsheet.Field("code").Required().MaxLength(30).Unique().Build(),
	spreadsheet.Field("name").Required().MaxLength(200).Build(),
	spreadsheet.Field("type").Required().Custom(knownLabel(localization.RubroType)).Build(),
	spreadsheet.Field("unit").MaxLength(20).Build(),
}

// ImportRubros creates one rubro per row
func (s *Service) ImportRubros(ctx context.Context, orgID uuid.UUID, src io.Reader) (*Result, error) {
	return s.run(ctx, "rubros", orgID, src, rubroSchema, rubroRules,
		func(ctx context.Context, orgID uuid.UUID, row *spreadsheet.Row) error {
			_, err := s.rubros.Create(ctx, orgID, appconstruction.RubroRequest{
				Code:        row.Get("code"),
				Name:        row.Get("name"),
				Type:        row.Get("type"),
				Unit:        row.Get("unit"),
				Description: row.Get("description"),
			})
			return err
		})
}

// knownLabel rejects labels the lookup table cannot map, before any
// database work for the row
func knownLabel(table *localization.LookupTable) func(string) error {
	return func(value string) error {
		_, err := table.Map(value)
		return err
	}
}
