package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Project struct {
	ID             uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string                      `gorm:"not null" json:"name"`
	Key            string                      `gorm:"not null;uniqueIndex:idx_projects_org_key" json:"key"`
	Description    string                      `json:"description"`
	OrganizationID string                      `gorm:"not null;index;uniqueIndex:idx_projects_org_key" json:"organizationId"`
	AdminIDs       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"adminIds"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`

	Sprints []Sprint `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"sprints,omitempty"`
}

// IsAdmin reports whether userID is listed among the project admins.
func (p *Project) IsAdmin(userID uuid.UUID) bool {
	id := userID.String()
	for _, admin := range p.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}
