package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository carries the shared database handle for every repository.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the underlying database connection
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// paginate is a gorm scope applying 1-based page windows. Page and limit
// are assumed already clamped by the dto layer.
func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Limit(limit).Offset((page - 1) * limit)
	}
}
