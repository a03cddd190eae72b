package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	Caller Caller
	PostID uint
	Text   string
}

type UpdateCommentInput struct {
	Caller    Caller
	PostID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	Caller    Caller
	PostID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// resolve walks the post -> comment nesting. The parent post is checked
// first so a missing post reports "Post not found" rather than "Comment
// not found", and a comment belonging to another post is invisible here.
func (s *CommentService) resolve(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostAndID(ctx, postID, commentID)
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := Authorize(in.Caller, ActionCreate, 0); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.Caller.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByPostAndID(ctx, in.PostID, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.resolve(ctx, postID, commentID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.resolve(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(in.Caller, ActionModify, comment.UserID); err != nil {
		return nil, err
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByPostAndID(ctx, in.PostID, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.resolve(ctx, in.PostID, in.CommentID)
	if err != nil {
		return err
	}
	if err := Authorize(in.Caller, ActionModify, comment.UserID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
