package repositories

import (
	"socialstream/models"

	"gorm.io/gorm"
)

// PostRepository interface defines Post-related database operations
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	// FindByUser returns the user's own posts, most recent first.
	FindByUser(userID uint) ([]models.Post, error)
	// Stream returns posts by the user and by everyone the user follows,
	// most recent first, at most limit rows.
	Stream(userID uint, limit int) ([]models.Post, error)
	// Recent returns the newest posts regardless of author.
	Recent(limit int) ([]models.Post, error)
}

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new Post
func (r *postRepository) Create(post *models.Post) error {
	return translate(r.db.Create(post).Error)
}

// FindByID finds Post by ID, with its author preloaded
func (r *postRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("User").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// FindByUser finds all Posts authored by one user
func (r *postRepository) FindByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// Stream assembles the feed as a single set union: posts whose author is
// in the caller's follow list, or the caller. Ties on the timestamp are
// broken by ID so ordering stays deterministic.
func (r *postRepository) Stream(userID uint, limit int) ([]models.Post, error) {
	following := r.db.Model(&models.Relationship{}).
		Select("to_user_id").
		Where("from_user_id = ?", userID)

	var posts []models.Post
	err := r.db.Preload("User").
		Where("user_id IN (?) OR user_id = ?", following, userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// Recent finds the newest Posts globally
func (r *postRepository) Recent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}
