// Package client implements the browse client: snapshot fetching, in-memory
// filtering and table rendering. Filtering never touches the network; it
// always runs against the snapshot fetched at load.
package client

import (
	"strings"

	"github.com/tatertot/apartmentsapi/api/apartment"
)

// Filter is the browse-page filter state. Nil fields mean "no constraint";
// clearing every field yields the identity filter.
type Filter struct {
	Name         string
	PriceMin     *float64
	PriceMax     *float64
	SqftMin      *float64
	SqftMax      *float64
	Bedrooms     *float64
	Bathrooms    *float64
	Distance1Max *float64
	Distance2Max *float64
}

// Clear resets every field, equivalent to the all-pass filter.
func (f *Filter) Clear() {
	*f = Filter{}
}

// Match reports whether a row passes every predicate. Rows with a null
// price or distance can never be excluded by the corresponding range.
// The distance2 predicate only applies to dev snapshots.
func (f Filter) Match(a apartment.ApartmentModel, isDev bool) bool {
	if q := strings.TrimSpace(strings.ToLower(f.Name)); q != "" {
		if !strings.Contains(strings.ToLower(a.Name), q) {
			return false
		}
	}

	if a.Price != nil {
		if f.PriceMin != nil && *a.Price < *f.PriceMin {
			return false
		}
		if f.PriceMax != nil && *a.Price > *f.PriceMax {
			return false
		}
	}

	if f.SqftMin != nil && a.SquareFootage < *f.SqftMin {
		return false
	}
	if f.SqftMax != nil && a.SquareFootage > *f.SqftMax {
		return false
	}

	if f.Bedrooms != nil && a.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && a.Bathrooms != *f.Bathrooms {
		return false
	}

	if f.Distance1Max != nil && a.Distance1 != nil && *a.Distance1 > *f.Distance1Max {
		return false
	}

	if isDev && f.Distance2Max != nil && a.Distance2 != nil && *a.Distance2 > *f.Distance2Max {
		return false
	}

	return true
}

// Apply filters rows as a conjunction of the set predicates.
func Apply(rows []apartment.ApartmentModel, f Filter, isDev bool) []apartment.ApartmentModel {
	filtered := make([]apartment.ApartmentModel, 0, len(rows))
	for _, row := range rows {
		if f.Match(row, isDev) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
