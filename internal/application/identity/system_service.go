package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ChartStatsReader is satisfied by the accounting StandardChartService
type ChartStatsReader interface {
	GetChartStats(ctx context.Context, orgID uuid.UUID) (*accounting.ChartStats, error)
}

// SystemService backs the cross-tenant system API used by SUPERADMIN
type SystemService struct {
	orgs    identity.OrganizationRepository
	users   identity.UserRepository
	charts  ChartStatsReader
	txScope TransactionScope
	logger  *zap.Logger
}

func NewSystemService(
	orgs identity.OrganizationRepository,
	users identity.UserRepository,
	charts ChartStatsReader,
	txScope TransactionScope,
	logger *zap.Logger,
) *SystemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemService{orgs: orgs, users: users, charts: charts, txScope: txScope, logger: logger}
}

// ListOrganizations returns a page of organizations with their chart stats
func (s *SystemService) ListOrganizations(ctx context.Context, filter shared.Filter) (shared.Paginated[OrganizationSummaryResponse], error) {
	filter = filter.Normalize()
	orgs, total, err := s.orgs.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[OrganizationSummaryResponse]{}, err
	}
	items := make([]OrganizationSummaryResponse, 0, len(orgs))
	for i := range orgs {
		stats, err := s.charts.GetChartStats(ctx, orgs[i].ID)
		if err != nil {
			return shared.Paginated[OrganizationSummaryResponse]{}, err
		}
		items = append(items, OrganizationSummaryResponse{
			OrganizationResponse: ToOrganizationResponse(&orgs[i]),
			Chart:                stats,
		})
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// CreateOrganization provisions an organization and its first ADMIN user
// in one transaction. Accounting starts disabled.
func (s *SystemService) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*CreateOrganizationResponse, error) {
	org, err := identity.NewOrganization(req.Name, req.Currency)
	if err != nil {
		return nil, err
	}
	org.SetTaxID(req.TaxID)

	admin, err := identity.NewUser(org.ID, req.AdminEmail, req.AdminName, req.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, admin.Email)
		if err != nil {
			return err
		}
		if exists {
			return shared.Conflict("EMAIL_ALREADY_REGISTERED", "email %q is already registered", admin.Email)
		}
		if err := repos.Organizations().Create(ctx, org); err != nil {
			return err
		}
		return repos.Users().Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Organization provisioned",
		zap.String("organization_id", org.ID.String()),
		zap.String("admin_id", admin.ID.String()))

	return &CreateOrganizationResponse{
		Organization: ToOrganizationResponse(org),
		Admin:        ToUserResponse(admin),
	}, nil
}
