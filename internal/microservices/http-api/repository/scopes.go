package repository

import "gorm.io/gorm"

// paginate limits a query to one 1-based page.
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// countAndFind counts every row matching tx, then loads one page of it into dest.
func countAndFind[T any](tx *gorm.DB, order string, page, pageSize int, preload ...string) ([]T, int64, error) {
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := tx.Session(&gorm.Session{}).Order(order).Scopes(paginate(page, pageSize))
	for _, assoc := range preload {
		q = q.Preload(assoc)
	}
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
