package construction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// InspectionStatus is the state of a site inspection
type InspectionStatus string

const (
	InspectionStatusPending    InspectionStatus = "PENDING"
	InspectionStatusInProgress InspectionStatus = "IN_PROGRESS"
	InspectionStatusCompleted  InspectionStatus = "COMPLETED"
	InspectionStatusCancelled  InspectionStatus = "CANCELLED"
)

// InspectionPriority ranks inspections
type InspectionPriority string

const (
	PriorityLow    InspectionPriority = "LOW"
	PriorityMedium InspectionPriority = "MEDIUM"
	PriorityHigh   InspectionPriority = "HIGH"
	PriorityUrgent InspectionPriority = "URGENT"
)

// InspectionType is the subject of an inspection
type InspectionType string

const (
	InspectionTypeQuality       InspectionType = "QUALITY"
	InspectionTypeSafety        InspectionType = "SAFETY"
	InspectionTypeProgress      InspectionType = "PROGRESS"
	InspectionTypeEnvironmental InspectionType = "ENVIRONMENTAL"
	InspectionTypeFinal         InspectionType = "FINAL"
)

// Inspection is a scheduled check on a project site
type Inspection struct {
	shared.OrgEntity
	ProjectID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Title         string             `gorm:"type:varchar(200);not null"`
	Type          InspectionType     `gorm:"type:varchar(20);not null"`
	Status        InspectionStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Priority      InspectionPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	Inspector     string             `gorm:"type:varchar(200)"`
	ScheduledDate time.Time          `gorm:"type:date;not null"`
	Findings      string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Inspection) TableName() string {
	return "inspections"
}

// InspectionDetails holds inspection fields, already mapped to tokens
type InspectionDetails struct {
	ProjectID     uuid.UUID
	Title         string
	Type          InspectionType
	Status        InspectionStatus
	Priority      InspectionPriority
	Inspector     string
	ScheduledDate time.Time
	Findings      string
}

// NewInspection creates an inspection; empty status and priority mean
// PENDING and MEDIUM
func NewInspection(orgID uuid.UUID, d InspectionDetails) (*Inspection, error) {
	if d.Status == "" {
		d.Status = InspectionStatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	in := &Inspection{OrgEntity: shared.NewOrgEntity(orgID)}
	if err := in.Update(d); err != nil {
		return nil, err
	}
	return in, nil
}

// Update replaces the inspection details
func (in *Inspection) Update(d InspectionDetails) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.Validation("INVALID_INSPECTION_TITLE", "inspection title cannot be empty")
	}
	if d.ProjectID == uuid.Nil {
		return shared.Validation("INSPECTION_PROJECT_REQUIRED", "inspection requires a project")
	}
	if d.ScheduledDate.IsZero() {
		return shared.Validation("INVALID_DATE", "scheduled date is required")
	}
	in.ProjectID = d.ProjectID
	in.Title = title
	in.Type = d.Type
	in.Status = d.Status
	in.Priority = d.Priority
	in.Inspector = strings.TrimSpace(d.Inspector)
	in.ScheduledDate = d.ScheduledDate
	in.Findings = strings.TrimSpace(d.Findings)
	in.Touch()
	return nil
}
