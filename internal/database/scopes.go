package database

import (
	"gorm.io/gorm"
)

// Equals restricts a query to rows where column matches value exactly.
// An empty value leaves the query untouched.
func Equals(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// NewestFirst orders tasks by creation time, most recent first
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
