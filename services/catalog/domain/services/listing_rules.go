// Package services contains stateless domain rules for the catalog bounded
// context. They operate purely on domain types and the standard library.
package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

// ValidateNewListing enforces the field constraints a listing must satisfy
// before its first persist:
//   - title and description must be non-empty (after trimming)
//   - type and condition must be known enum members
//   - sales require a positive price; donations must not carry one
//   - negotiable is only meaningful for sales
//   - at most 5 tags, none empty; at most 5 image URLs
func ValidateNewListing(l *models.Listing) error {
	if l == nil {
		return fmt.Errorf("listing cannot be nil")
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if strings.TrimSpace(l.Description) == "" {
		return fmt.Errorf("description must not be empty")
	}
	if !l.Type.Valid() {
		return fmt.Errorf("unknown listing type %q", l.Type)
	}
	if !l.Condition.Valid() {
		return fmt.Errorf("unknown condition %q", l.Condition)
	}

	switch l.Type {
	case models.TypeSale:
		if l.Price == nil {
			return fmt.Errorf("sale listings require a price")
		}
		if *l.Price <= 0 {
			return fmt.Errorf("price must be positive, got %v", *l.Price)
		}
	case models.TypeDonation:
		if l.Price != nil {
			return fmt.Errorf("donation listings must not carry a price")
		}
		if l.Negotiable {
			return fmt.Errorf("negotiable only applies to sale listings")
		}
	}

	if len(l.Tags) > models.MaxTags {
		return fmt.Errorf("at most %d tags allowed, got %d", models.MaxTags, len(l.Tags))
	}
	for _, tag := range l.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags must not be empty")
		}
	}
	if len(l.Images) > models.MaxImages {
		return fmt.Errorf("at most %d images allowed, got %d", models.MaxImages, len(l.Images))
	}

	return nil
}
