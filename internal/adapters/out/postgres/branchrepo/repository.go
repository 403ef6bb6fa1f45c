package branchrepo

import (
	"context"
	"errors"
	"strings"

	"bakery/internal/core/domain/model/branch"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM.
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Get retrieves a branch by ID with its service areas.
func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	err := r.db.WithContext(ctx).Preload("ServiceAreas").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByCode retrieves a branch by its stable code. Codes are stored
// uppercase; lookup is case-insensitive.
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*branch.Branch, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto BranchDTO
	err := r.db.WithContext(ctx).Preload("ServiceAreas").First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListActive retrieves all branches currently operational, with their
// service areas, ordered by code for deterministic assignment sweeps.
func (r *GormBranchRepository) ListActive(ctx context.Context) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	err := r.db.WithContext(ctx).
		Preload("ServiceAreas").
		Where("active").
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		branches = append(branches, b)
	}

	return branches, nil
}
