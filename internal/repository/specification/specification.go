// Package specification holds composable filters for movie queries.
package specification

import "gorm.io/gorm"

// Specification narrows or orders a query. Repositories apply them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
