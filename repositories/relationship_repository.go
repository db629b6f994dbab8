package repositories

import (
	"socialstream/models"

	"gorm.io/gorm"
)

// RelationshipRepository interface defines follow-edge database operations
type RelationshipRepository interface {
	// Create inserts a follow edge; returns ErrDuplicate when it exists.
	Create(edge *models.Relationship) error
	// Delete removes a follow edge. Deleting a missing edge is not an error.
	Delete(fromUserID, toUserID uint) error
	// Following returns the users fromUserID has outgoing edges to.
	Following(fromUserID uint) ([]models.User, error)
	// Followers returns the users with edges pointing at toUserID.
	Followers(toUserID uint) ([]models.User, error)
}

// relationshipRepository implements the RelationshipRepository interface
type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository creates a new RelationshipRepository instance
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

// Create inserts a new follow edge
func (r *relationshipRepository) Create(edge *models.Relationship) error {
	return translate(r.db.Create(edge).Error)
}

// Delete removes the edge between two users
func (r *relationshipRepository) Delete(fromUserID, toUserID uint) error {
	err := r.db.
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&models.Relationship{}).Error
	return translate(err)
}

// Following joins through outgoing edges
func (r *relationshipRepository) Following(fromUserID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN relationships ON relationships.to_user_id = users.id").
		Where("relationships.from_user_id = ?", fromUserID).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Followers joins through incoming edges
func (r *relationshipRepository) Followers(toUserID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN relationships ON relationships.from_user_id = users.id").
		Where("relationships.to_user_id = ?", toUserID).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
