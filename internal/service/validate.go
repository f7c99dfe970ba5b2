package service

import (
	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

// Category and price ceiling rules shared by every role's filtered queries.

func validateCategory(category int) error {
	if category < models.CategoryMin || category > models.CategoryMax {
		return apperr.New(apperr.CodeNonExistingCategory, "category %d does not exist", category)
	}
	return nil
}

func validatePriceCeiling(price float64) error {
	if price <= 0 {
		return apperr.New(apperr.CodeInvalidPrice, "invalid price %v", price)
	}
	return nil
}
