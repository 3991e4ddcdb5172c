package repository

import (
	"moi-backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// Notification recipients.

// AdminPushTokens returns the registered tokens of all admins. Admins without
// a token are filtered out here rather than treated as an error.
func (r *UserRepository) AdminPushTokens() ([]string, error) {
	var tokens []string
	err := r.DB.Model(&entity.User{}).
		Where("role = ? AND push_token <> ''", "admin").
		Pluck("push_token", &tokens).Error
	return tokens, err
}

func (r *UserRepository) PushTokenByID(id uint) (string, error) {
	var row struct{ PushToken string }
	err := r.DB.Model(&entity.User{}).
		Select("push_token").Where("id = ?", id).
		Limit(1).Scan(&row).Error
	return row.PushToken, err
}
