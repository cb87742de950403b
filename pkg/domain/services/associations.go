package services

import (
	"fmt"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// AssociationIssueKind classifies an employee↔product association problem
type AssociationIssueKind int

const (
	// UnknownProduct means an employee is associated with a product that is not on the quote
	UnknownProduct AssociationIssueKind = iota
	// UnstaffedProduct means no employee is associated with a product on the quote
	UnstaffedProduct
)

// String method for AssociationIssueKind enum
func (k AssociationIssueKind) String() string {
	switch k {
	case UnknownProduct:
		return "UnknownProduct"
	case UnstaffedProduct:
		return "UnstaffedProduct"
	default:
		return "Unknown"
	}
}

// AssociationIssue is a non-fatal finding about employee↔product associations
type AssociationIssue struct {
	Kind       AssociationIssueKind
	EmployeeID string
	ProductID  string
	Message    string
}

// IsAssociated reports whether the employee assignment covers the product
func IsAssociated(assignment entities.EmployeeAssignment, productID string) bool {
	for _, id := range assignment.AssociatedProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// CheckAssociations reports employees pointing at products missing from the
// quote and, once any association is declared, products nobody is assigned to
func CheckAssociations(input *entities.QuotePricingInput) []AssociationIssue {
	issues := make([]AssociationIssue, 0)

	products := make(map[string]*entities.Product, len(input.Products))
	for _, assignment := range input.Products {
		if assignment.Product != nil {
			products[assignment.Product.ID] = assignment.Product
		}
	}

	covered := make(map[string]bool)
	declared := false
	for _, assignment := range input.Employees {
		if assignment.Employee == nil {
			continue
		}
		for _, productID := range assignment.AssociatedProductIDs {
			declared = true
			if _, ok := products[productID]; !ok {
				issues = append(issues, AssociationIssue{
					Kind:       UnknownProduct,
					EmployeeID: assignment.Employee.ID,
					ProductID:  productID,
					Message:    fmt.Sprintf("employee %s is associated with product %s which is not on the quote", assignment.Employee.Name, productID),
				})
				continue
			}
			covered[productID] = true
		}
	}

	if !declared {
		return issues
	}

	for _, assignment := range input.Products {
		if assignment.Product == nil || covered[assignment.Product.ID] {
			continue
		}
		issues = append(issues, AssociationIssue{
			Kind:      UnstaffedProduct,
			ProductID: assignment.Product.ID,
			Message:   fmt.Sprintf("product %s has no associated employee", assignment.Product.Name),
		})
	}

	return issues
}
