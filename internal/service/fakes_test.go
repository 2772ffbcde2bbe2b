package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/googleauth"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	tokens := stored.RefreshTokens
	copied := *user
	copied.RefreshTokens = tokens
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) PushRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshTokens = append(u.RefreshTokens, token)
	return nil
}

func (r *fakeUserRepo) PullRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	for i, t := range u.RefreshTokens {
		if t == token {
			u.RefreshTokens = append(u.RefreshTokens[:i], u.RefreshTokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) tokens(userID primitive.ObjectID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	return append([]string{}, u.RefreshTokens...)
}

// fakePostRepo is an in-memory PostRepository.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*domain.Post)}
}

func (r *fakePostRepo) GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if senderID != nil && p.SenderID != *senderID {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Content = content
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.posts, id)
	return p, nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i, l := range p.Likes {
		if l == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			p.LikesCount--
			copied := *p
			return &copied, nil
		}
	}
	p.Likes = append(p.Likes, userID)
	p.LikesCount++
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) IncCommentsCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CommentsCount += delta
	return nil
}

// fakeCommentRepo is an in-memory CommentRepository.
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*domain.Comment)}
}

func (r *fakeCommentRepo) GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if senderID != nil && c.SenderID != *senderID {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) GetByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Content = content
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.comments, id)
	return c, nil
}

func (r *fakeCommentRepo) DeleteByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []*domain.Comment
	for id, c := range r.comments {
		if c.PostID == postID {
			removed = append(removed, c)
			delete(r.comments, id)
		}
	}
	return removed, nil
}

func (r *fakeCommentRepo) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i, l := range c.Likes {
		if l == userID {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			c.LikesCount--
			copied := *c
			return &copied, nil
		}
	}
	c.Likes = append(c.Likes, userID)
	c.LikesCount++
	copied := *c
	return &copied, nil
}

// fakeTripRepo is an in-memory TripRepository.
type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[primitive.ObjectID]*domain.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[primitive.ObjectID]*domain.Trip)}
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip.ID = primitive.NewObjectID()
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

func (r *fakeTripRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Trip
	for _, t := range r.trips {
		if t.OwnerID == ownerID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTripRepo) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.trips, id)
	return t, nil
}

// fakeImageStore counts puts and deletes; Put returns deterministic URLs.
type fakeImageStore struct {
	mu      sync.Mutex
	puts    int
	deleted []string
	putErr  error
}

func (s *fakeImageStore) Put(ctx context.Context, upload storage.Upload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	s.puts++
	return fmt.Sprintf("https://img.test/%d-%s", s.puts, upload.Filename), nil
}

func (s *fakeImageStore) Delete(ctx context.Context, publicURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicURL)
	return nil
}

func (s *fakeImageStore) deletedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.deleted...)
}

// fakeVerifier returns a canned identity.
type fakeVerifier struct {
	identity *googleauth.Identity
	err      error
}

func (v *fakeVerifier) Verify(ctx context.Context, idToken string) (*googleauth.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

// fakeGenerator returns a canned plan.
type fakeGenerator struct {
	plan *itinerary.Plan
	err  error
	last itinerary.Request
}

func (g *fakeGenerator) Generate(ctx context.Context, req itinerary.Request) (*itinerary.Plan, error) {
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return g.plan, nil
}
