package pkg

import "gorm.io/gorm"

// WithTx runs fn inside a transaction, committing when fn returns nil
// and rolling back on error. A panic inside fn rolls back and re-panics.
// Moderation decisions rely on this: a status change and the matching
// inventory write must land together or not at all.
func WithTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
