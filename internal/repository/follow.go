// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"plume/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateFollow is returned when the follows unique index rejects an
// insert. The service layer pre-checks for duplicates, so this only
// surfaces when two requests race past the check.
var ErrDuplicateFollow = errors.New("follow edge already exists")

// FollowRepository defines the interface for follow-graph operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	ListByFollower(ctx context.Context, followerID uint, search string, limit, offset int) ([]*models.Follow, error)
	Delete(ctx context.Context, followerID, followingID uint) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateFollow
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) ListByFollower(ctx context.Context, followerID uint, search string, limit, offset int) ([]*models.Follow, error) {
	var follows []*models.Follow
	query := r.db.WithContext(ctx).
		Preload("Follower").
		Preload("Following").
		Where("follower_id = ?", followerID)

	if search != "" {
		// LOWER(...) LIKE instead of ILIKE keeps the filter portable
		// across postgres and the sqlite test database.
		query = query.
			Joins("JOIN users followed ON followed.id = follows.following_id").
			Where("LOWER(followed.username) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.
		Order("follows.created_at ASC, follows.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
