package models

import "time"

// Follow is a directed edge in the follow graph: FollowerID follows
// FollowingID. The composite unique index is the atomicity backstop for
// concurrent creates; the service layer owns the user-facing validation
// (self-follow, duplicate edge) so callers see a 400 instead of a raw
// constraint violation.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"following_id"`
	Follower    User      `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following   User      `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
