package repositories

import (
	"socialstream/models"

	"gorm.io/gorm"
)

// UserRepository interface defines User-related database operations
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	// FindByUsername compares usernames case-insensitively.
	FindByUsername(username string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new User. Each insert is its own transaction, so a
// unique-constraint violation leaves no partial row behind.
func (r *userRepository) Create(user *models.User) error {
	return translate(r.db.Create(user).Error)
}

// FindByID finds User by ID
func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername finds User by Username, ignoring case. The unique index
// itself stays case-sensitive; only lookup is normalized.
func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail finds User by Email
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
