package branch

import (
	"errors"
	"strings"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

// ErrBranchIsNotConstructed is returned when a Branch instance was not
// created through the NewBranch factory method.
var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// ServiceArea describes one area a branch serves. Any combination of fields
// may be set; the assignment policy scores an address against each descriptor
// independently (zone reference strongest, then district, then city).
type ServiceArea struct {
	ZoneID   *kernel.UUID
	City     string
	District string
}

// Branch is a physical fulfillment location capable of preparing and
// dispatching orders. The assignment subsystem reads branches only; their
// lifecycle is managed elsewhere.
type Branch struct {
	id           kernel.UUID
	code         string
	name         string
	active       bool
	serviceAreas []ServiceArea

	isConstructed bool
}

// NewBranch creates a validated branch.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - code: stable short code such as "MAIN" (required, stored uppercase)
//   - name: display name (required)
//   - active: operational status
//   - serviceAreas: descriptors used to score fitness against an order's
//     delivery address; may be empty for branches that only receive
//     fallback or manual assignments
func NewBranch(id kernel.UUID, code, name string, active bool, serviceAreas []ServiceArea) (*Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("branch code")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("branch name")
	}

	return &Branch{
		id:            id,
		code:          strings.ToUpper(code),
		name:          name,
		active:        active,
		serviceAreas:  append([]ServiceArea(nil), serviceAreas...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Branch instance was properly constructed.
func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// Code returns the branch's stable short code.
func (b *Branch) Code() string {
	return b.code
}

// Name returns the branch's display name.
func (b *Branch) Name() string {
	return b.name
}

// IsActive reports whether the branch is operational.
func (b *Branch) IsActive() bool {
	return b.active
}

// ServiceAreas returns a copy of the branch's service-area descriptors.
func (b *Branch) ServiceAreas() []ServiceArea {
	return append([]ServiceArea(nil), b.serviceAreas...)
}
