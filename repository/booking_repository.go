package repository

import (
	"moi-backend/entity"

	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(b *entity.Booking) error {
	return r.DB.Create(b).Error
}

func (r *BookingRepository) Get(id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListForUser(userID uint) ([]entity.Booking, error) {
	var out []entity.Booking
	err := r.DB.Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListAll() ([]entity.Booking, error) {
	var out []entity.Booking
	err := r.DB.Order("id DESC").Find(&out).Error
	return out, err
}

// Same guard trick as orders: the transition applies only if the row is still
// in the expected status.
func (r *BookingRepository) UpdateStatusGuard(id uint, from, to entity.BookingStatus) (int64, error) {
	res := r.DB.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// CancelGuard cancels from either editable status in one statement.
func (r *BookingRepository) CancelGuard(id uint) (int64, error) {
	res := r.DB.Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", id, []entity.BookingStatus{entity.BookingPending, entity.BookingConfirmed}).
		Update("status", entity.BookingCancelled)
	return res.RowsAffected, res.Error
}

func (r *BookingRepository) Patch(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Booking{}).Where("id = ?", id).Updates(updates).Error
}
