package services

import (
	"errors"
	"fmt"

	"socialstream/models"
	"socialstream/repositories"
)

// The GraphService interface defines follow-graph mutations and queries.
// Follow and Unfollow are idempotent: repeating either leaves the graph
// unchanged and succeeds.
type GraphService interface {
	Follow(fromUserID uint, toUsername string) (*models.User, error)
	Unfollow(fromUserID uint, toUsername string) (*models.User, error)
	Following(userID uint) ([]models.User, error)
	Followers(userID uint) ([]models.User, error)
	// ResolveUsername looks a user up case-insensitively.
	ResolveUsername(username string) (*models.User, error)
}

// graphService is the implementation of the GraphService interface
type graphService struct {
	users repositories.UserRepository
	edges repositories.RelationshipRepository
}

var _ GraphService = (*graphService)(nil)

// NewGraphService creates a new GraphService instance
func NewGraphService(users repositories.UserRepository, edges repositories.RelationshipRepository) GraphService {
	return &graphService{users: users, edges: edges}
}

// Follow resolves the target username case-insensitively and inserts the
// edge. Following someone already followed is a silent no-op success.
func (s *graphService) Follow(fromUserID uint, toUsername string) (*models.User, error) {
	target, err := s.resolve(toUsername)
	if err != nil {
		return nil, err
	}

	edge := models.Relationship{FromUserID: fromUserID, ToUserID: target.ID}
	if err := s.edges.Create(&edge); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return target, nil
		}
		return nil, fmt.Errorf("failed to create follow edge: %w", err)
	}
	return target, nil
}

// Unfollow resolves the target the same way and removes the edge, if any.
func (s *graphService) Unfollow(fromUserID uint, toUsername string) (*models.User, error) {
	target, err := s.resolve(toUsername)
	if err != nil {
		return nil, err
	}

	if err := s.edges.Delete(fromUserID, target.ID); err != nil {
		return nil, fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return target, nil
}

// Following returns the users userID follows, in unspecified order.
func (s *graphService) Following(userID uint) ([]models.User, error) {
	return s.edges.Following(userID)
}

// Followers returns the users following userID, in unspecified order.
func (s *graphService) Followers(userID uint) ([]models.User, error) {
	return s.edges.Followers(userID)
}

// ResolveUsername looks a user up case-insensitively.
func (s *graphService) ResolveUsername(username string) (*models.User, error) {
	return s.resolve(username)
}

func (s *graphService) resolve(username string) (*models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}
	return user, nil
}
