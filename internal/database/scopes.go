package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NotDeleted excludes soft-deleted rows.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false)
	}
}

// NameSearch filters by case-insensitive partial match on the given column.
func NameSearch(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), pattern)
	}
}

// OrderBy orders by a whitelisted column, ascending unless desc is set.
// An unknown column leaves the query untouched.
func OrderBy(column string, desc bool, allowed map[string]bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if column == "" || !allowed[column] {
			return db
		}
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		return db.Order(fmt.Sprintf("%s %s", column, direction))
	}
}
