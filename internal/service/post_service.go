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

// postService implements PostService. Sender name and avatar are stamped
// onto each post at creation so feed reads need no join.
type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	images      storage.ImageStore
	logger      *zap.Logger
	hooks       hooks[domain.Post]
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	images storage.ImageStore,
	logger *zap.Logger,
) PostService {
	s := &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		images:      images,
		logger:      logger,
	}
	s.hooks = hooks[domain.Post]{
		afterDelete: s.cleanupDeletedPost,
	}
	return s
}

func (s *postService) GetAll(ctx context.Context, senderID string) ([]*domain.Post, error) {
	var filter *primitive.ObjectID
	if senderID != "" {
		oid, err := parseObjectID(senderID)
		if err != nil {
			return nil, err
		}
		filter = &oid
	}

	posts, err := s.postRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, senderID string, req *dto.CreatePostRequest, images []storage.Upload) (*domain.Post, error) {
	oid, err := parseObjectID(senderID)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		SenderID:     sender.ID,
		SenderName:   sender.DisplayName(),
		SenderAvatar: sender.ProfilePicture,
		Content:      req.Content,
		Images:       urls,
	}

	if err := s.hooks.runBeforeCreate(ctx, post); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	if err := s.hooks.runAfterCreate(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, id, callerID string, req *dto.UpdatePostRequest) (*domain.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeSender(ctx, oid, callerID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.Update(ctx, oid, req.Content)
	if err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id, callerID string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if err := s.authorizeSender(ctx, oid, callerID); err != nil {
		return err
	}

	post, err := s.postRepo.Delete(ctx, oid)
	if err != nil {
		return notFoundOr(err, "Post not found")
	}

	s.hooks.runAfterDelete(ctx, post)
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, id, callerID string) (*domain.Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := parseObjectID(callerID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.ToggleLike(ctx, oid, uid)
	if err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	return post, nil
}

// authorizeSender permits the mutation only for the post's author.
func (s *postService) authorizeSender(ctx context.Context, postID primitive.ObjectID, callerID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return notFoundOr(err, "Post not found")
	}
	if post.SenderID.Hex() != callerID {
		return apperr.Authentication("not allowed to modify this post")
	}
	return nil
}

// cleanupDeletedPost removes the post's comments and every attached image.
// The post itself is already gone; failures here orphan data but never
// surface to the caller.
func (s *postService) cleanupDeletedPost(ctx context.Context, post *domain.Post) {
	comments, err := s.commentRepo.DeleteByPostID(ctx, post.ID)
	if err != nil {
		s.logger.Warn("failed to delete comments of removed post",
			zap.String("postId", post.ID.Hex()), zap.Error(err))
	}

	urls := append([]string{}, post.Images...)
	for _, c := range comments {
		urls = append(urls, c.Images...)
	}
	s.deleteImages(ctx, urls)
}

func (s *postService) uploadImages(ctx context.Context, images []storage.Upload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.images.Put(ctx, img)
		if err != nil {
			// Don't leave half an upload batch behind.
			s.deleteImages(ctx, urls)
			return nil, fmt.Errorf("failed to upload image %s: %w", img.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *postService) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Warn("failed to delete image", zap.String("url", url), zap.Error(err))
		}
	}
}
