package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(req ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Le nom est requis"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "quantity", Description: "La quantité ne peut pas être négative"})
	}
	return errs
}

func validateProductPatch(req ProductPatchRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Le nom est requis"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "quantity", Description: "La quantité ne peut pas être négative"})
	}
	return errs
}
