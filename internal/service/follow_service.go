package service

import (
	"context"
	"errors"

	"plume/internal/models"
	"plume/internal/observability"
	"plume/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type CreateFollowInput struct {
	Caller Caller
	// Username of the user to follow.
	Username string
}

type ListFollowsInput struct {
	Caller Caller
	Search string
	Limit  int
	Offset int
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the caller to the named user.
// Checks run in a fixed order so clients get stable errors: target
// existence, then self-follow, then duplicate. The unique index on
// (follower_id, following_id) backstops the duplicate check when two
// requests race past it.
func (s *FollowService) Follow(ctx context.Context, in CreateFollowInput) (*models.Follow, error) {
	if err := Authorize(in.Caller, ActionCreate, 0); err != nil {
		return nil, err
	}
	if in.Username == "" {
		return nil, models.NewValidationError("Following username is required")
	}

	target, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		observability.FollowRejections.WithLabelValues("not_found").Inc()
		return nil, models.NewNamedNotFoundError("User", in.Username)
	}

	if target.ID == in.Caller.UserID {
		observability.FollowRejections.WithLabelValues("self_follow").Inc()
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	exists, err := s.followRepo.Exists(ctx, in.Caller.UserID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		observability.FollowRejections.WithLabelValues("duplicate").Inc()
		return nil, models.NewValidationError("Already following this user")
	}

	follow := &models.Follow{
		FollowerID:  in.Caller.UserID,
		FollowingID: target.ID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrDuplicateFollow) {
			observability.FollowRejections.WithLabelValues("duplicate").Inc()
			return nil, models.NewValidationError("Already following this user")
		}
		return nil, err
	}

	follower, err := s.userRepo.GetByID(ctx, in.Caller.UserID)
	if err != nil {
		return nil, err
	}
	follow.Follower = *follower
	follow.Following = *target
	return follow, nil
}

// ListFollows returns the caller's own follow edges, optionally filtered by
// a case-insensitive substring match on the followed username.
func (s *FollowService) ListFollows(ctx context.Context, in ListFollowsInput) ([]*models.Follow, error) {
	if err := Authorize(in.Caller, ActionCreate, 0); err != nil {
		return nil, err
	}
	return s.followRepo.ListByFollower(ctx, in.Caller.UserID, in.Search, in.Limit, in.Offset)
}

// Unfollow removes the caller's follow edge to the named user.
func (s *FollowService) Unfollow(ctx context.Context, caller Caller, username string) error {
	if err := Authorize(caller, ActionCreate, 0); err != nil {
		return err
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNamedNotFoundError("User", username)
	}
	exists, err := s.followRepo.Exists(ctx, caller.UserID, target.ID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNamedNotFoundError("Follow", username)
	}
	return s.followRepo.Delete(ctx, caller.UserID, target.ID)
}
