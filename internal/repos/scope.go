package repos

import "gorm.io/gorm"

// active is the mandatory soft-delete predicate. Every default read in this
// package goes through it; only the IncludingDeleted lookups used by the
// delete flows bypass it.
func active(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
