package service

import (
	"context"
	"fmt"

	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// commentService implements CommentService. Creating and deleting comments
// adjusts the parent post's denormalized comment counter through hooks.
type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	images      storage.ImageStore
	logger      *zap.Logger
	hooks       hooks[domain.Comment]
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	images storage.ImageStore,
	logger *zap.Logger,
) CommentService {
	s := &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		images:      images,
		logger:      logger,
	}
	s.hooks = hooks[domain.Comment]{
		afterCreate: s.bumpPostCounter,
		afterDelete: s.cleanupDeletedComment,
	}
	return s
}

func (s *commentService) GetAll(ctx context.Context, senderID string) ([]*domain.Comment, error) {
	var filter *primitive.ObjectID
	if senderID != "" {
		oid, err := parseObjectID(senderID)
		if err != nil {
			return nil, err
		}
		filter = &oid
	}

	comments, err := s.commentRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	return comment, nil
}

func (s *commentService) GetByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	oid, err := parseObjectID(postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) Create(ctx context.Context, senderID string, req *dto.CreateCommentRequest, images []storage.Upload) (*domain.Comment, error) {
	if req.PostID == "" {
		return nil, apperr.Validation("Post Id required")
	}

	postOID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		// A malformed id cannot name any post.
		return nil, apperr.NotFound("Post not found")
	}
	if _, err := s.postRepo.GetByID(ctx, postOID); err != nil {
		return nil, notFoundOr(err, "Post not found")
	}

	senderOID, err := parseObjectID(senderID)
	if err != nil {
		return nil, err
	}
	sender, err := s.userRepo.GetByID(ctx, senderOID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:       postOID,
		SenderID:     sender.ID,
		SenderName:   sender.DisplayName(),
		SenderAvatar: sender.ProfilePicture,
		Content:      req.Content,
		Images:       urls,
	}

	if err := s.hooks.runBeforeCreate(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if err := s.hooks.runAfterCreate(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, id, callerID string, req *dto.UpdateCommentRequest) (*domain.Comment, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeSender(ctx, oid, callerID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Update(ctx, oid, req.Content)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id, callerID string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if err := s.authorizeSender(ctx, oid, callerID); err != nil {
		return err
	}

	comment, err := s.commentRepo.Delete(ctx, oid)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}

	s.hooks.runAfterDelete(ctx, comment)
	return nil
}

func (s *commentService) ToggleLike(ctx context.Context, id, callerID string) (*domain.Comment, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := parseObjectID(callerID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.ToggleLike(ctx, oid, uid)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	return comment, nil
}

func (s *commentService) authorizeSender(ctx context.Context, commentID primitive.ObjectID, callerID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}
	if comment.SenderID.Hex() != callerID {
		return apperr.Authentication("not allowed to modify this comment")
	}
	return nil
}

func (s *commentService) bumpPostCounter(ctx context.Context, comment *domain.Comment) error {
	if err := s.postRepo.IncCommentsCount(ctx, comment.PostID, 1); err != nil {
		// The comment exists; a stale counter is recoverable, a failed
		// create is not.
		s.logger.Warn("failed to increment post comment counter",
			zap.String("postId", comment.PostID.Hex()), zap.Error(err))
	}
	return nil
}

func (s *commentService) cleanupDeletedComment(ctx context.Context, comment *domain.Comment) {
	if err := s.postRepo.IncCommentsCount(ctx, comment.PostID, -1); err != nil {
		s.logger.Warn("failed to decrement post comment counter",
			zap.String("postId", comment.PostID.Hex()), zap.Error(err))
	}
	s.deleteImages(ctx, comment.Images)
}

func (s *commentService) uploadImages(ctx context.Context, images []storage.Upload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.images.Put(ctx, img)
		if err != nil {
			s.deleteImages(ctx, urls)
			return nil, fmt.Errorf("failed to upload image %s: %w", img.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *commentService) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Warn("failed to delete image", zap.String("url", url), zap.Error(err))
		}
	}
}
