package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("content not found")

// RecordView bumps the view counter of one content row and returns the
// new count. The increment happens in SQL so concurrent detail-page
// hits don't lose updates to a read-modify-write race
func RecordView(ctx context.Context, db *gorm.DB, m any, id uint) (int64, error) {
	var count int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(m).
			Where("id = ?", id).
			UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrContentNotFound
		}

		return tx.Model(m).
			Where("id = ?", id).
			Select("views_count").
			Scan(&count).
			Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
