package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

const maxPostLen = 10000

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
}

type CreatePostInput struct {
	Caller   Caller
	Text     string
	ImageURL string
	GroupID  *uint
}

type UpdatePostInput struct {
	Caller   Caller
	PostID   uint
	Text     string
	ImageURL *string
	GroupID  *uint
	// ClearGroup detaches the post from its group. GroupID nil alone means
	// "leave unchanged" so partial updates work.
	ClearGroup bool
}

type DeletePostInput struct {
	Caller Caller
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	groupRepo repository.GroupRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		groupRepo:   groupRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := Authorize(in.Caller, ActionCreate, 0); err != nil {
		return nil, err
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}
	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	// Authorship always comes from the caller, never from the payload.
	post := &models.Post{
		Text:     in.Text,
		ImageURL: in.ImageURL,
		UserID:   in.Caller.UserID,
		GroupID:  in.GroupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) ListGroupPosts(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByGroup(ctx, groupID, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(in.Caller, ActionModify, post.UserID); err != nil {
		return nil, err
	}

	if in.Text != "" {
		if len(in.Text) > maxPostLen {
			return nil, models.NewValidationError("Post too long (max 10000 characters)")
		}
		post.Text = in.Text
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	switch {
	case in.ClearGroup:
		post.GroupID = nil
		post.Group = nil
	case in.GroupID != nil:
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
		post.Group = nil
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if err := Authorize(in.Caller, ActionModify, post.UserID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}
	// Posts are soft deleted, so the FK cascade never fires; take the
	// comments down with the post explicitly.
	return s.commentRepo.DeleteByPost(ctx, in.PostID)
}
