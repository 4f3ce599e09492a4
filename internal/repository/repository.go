// Package repository holds the GORM-backed persistence layer.
//
// Repositories return GORM errors as-is (gorm.ErrRecordNotFound,
// gorm.ErrDuplicatedKey); translating them is the service layer's job.
package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Page selects a window of a list query.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// deleted maps a delete that touched no rows to gorm.ErrRecordNotFound.
func deleted(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
