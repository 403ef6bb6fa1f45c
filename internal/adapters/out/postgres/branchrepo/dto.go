// Package branchrepo provides data transfer objects and mapping functions
// for the branch directory. Branches are reference data: the assignment
// subsystem reads them and never writes them.
package branchrepo

import (
	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO represents the database structure for branch records.
type BranchDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code   string    `gorm:"type:varchar(32);uniqueIndex"`
	Name   string
	Active bool `gorm:"index"`

	ServiceAreas []ServiceAreaDTO `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for branch entities.
func (BranchDTO) TableName() string {
	return "branches"
}

// ServiceAreaDTO represents one service-area row of a branch. A row matches
// by zone reference, by district, or by city, whichever columns are set.
type ServiceAreaDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	BranchID uuid.UUID `gorm:"type:uuid;index"`
	ZoneID   *uuid.UUID `gorm:"type:uuid"`
	City     string
	District string
}

// TableName specifies the database table name for branch service areas.
func (ServiceAreaDTO) TableName() string {
	return "branch_service_areas"
}

// toDomain converts a database DTO to a branch domain entity.
func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	areas := make([]branch.ServiceArea, 0, len(dto.ServiceAreas))
	for _, areaDTO := range dto.ServiceAreas {
		var zoneID *kernel.UUID
		if areaDTO.ZoneID != nil {
			zID, zoneErr := kernel.UUIDFromBytes((*areaDTO.ZoneID)[:])
			if zoneErr != nil {
				return nil, zoneErr
			}
			zoneID = &zID
		}
		areas = append(areas, branch.ServiceArea{
			ZoneID:   zoneID,
			City:     areaDTO.City,
			District: areaDTO.District,
		})
	}

	return branch.NewBranch(id, dto.Code, dto.Name, dto.Active, areas)
}
