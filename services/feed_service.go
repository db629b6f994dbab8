package services

import (
	"errors"
	"fmt"
	"strings"

	"socialstream/models"
	"socialstream/repositories"
)

// The FeedService interface defines post creation and feed assembly.
type FeedService interface {
	CreatePost(userID uint, content string) (*models.Post, error)
	GetPost(id uint) (*models.Post, error)
	GetPosts(userID uint) ([]models.Post, error)
	GetStream(userID uint, limit int) ([]models.Post, error)
	GetUserStream(username string) (*models.User, []models.Post, error)
	RecentPosts(limit int) ([]models.Post, error)
}

// feedService is the implementation of the FeedService interface
type feedService struct {
	users repositories.UserRepository
	posts repositories.PostRepository

	// maxLimit caps every feed query; callers cannot request more rows.
	maxLimit int
}

var _ FeedService = (*feedService)(nil)

// NewFeedService creates a new FeedService instance
func NewFeedService(users repositories.UserRepository, posts repositories.PostRepository, maxLimit int) FeedService {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &feedService{users: users, posts: posts, maxLimit: maxLimit}
}

// CreatePost trims surrounding whitespace and inserts the post.
func (s *feedService) CreatePost(userID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyPost
	}

	post := models.Post{UserID: userID, Content: content}
	if err := s.posts.Create(&post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// GetPost returns a single post or ErrNotFound.
func (s *feedService) GetPost(id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

// GetPosts returns all posts authored by the user, most recent first.
func (s *feedService) GetPosts(userID uint) ([]models.Post, error) {
	return s.posts.FindByUser(userID)
}

// GetStream returns the union of the user's own posts and posts by
// everyone the user follows, most recent first.
func (s *feedService) GetStream(userID uint, limit int) ([]models.Post, error) {
	return s.posts.Stream(userID, s.clamp(limit))
}

// GetUserStream resolves a username case-insensitively and returns that
// user's own posts, for profile-style views.
func (s *feedService) GetUserStream(username string) (*models.User, []models.Post, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to resolve username: %w", err)
	}

	posts, err := s.posts.FindByUser(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

// RecentPosts returns the newest posts globally, for the public view.
func (s *feedService) RecentPosts(limit int) ([]models.Post, error) {
	return s.posts.Recent(s.clamp(limit))
}

func (s *feedService) clamp(limit int) int {
	if limit <= 0 || limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
