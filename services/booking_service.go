package services

import (
	"context"
	"errors"

	"moi-backend/entity"
	"moi-backend/repository"
	"moi-backend/ws"
)

type BookingService struct {
	Repo     *repository.BookingRepository
	Notifier *NotificationService
	Events   EventPublisher
}

func NewBookingService(repo *repository.BookingRepository, notifier *NotificationService, events EventPublisher) *BookingService {
	return &BookingService{Repo: repo, Notifier: notifier, Events: events}
}

type CreateBookingIn struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Guests      int    `json:"guests" binding:"min=1"`
	Message     string `json:"message"`
}

// BookingPatch is a sparse update: nil means "leave the field alone". Only
// the fields a guest may edit exist here, so an immutable field can never
// sneak into a patch.
type BookingPatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Guests      *int    `json:"guests"`
	Message     *string `json:"message"`
}

func (p *BookingPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PhoneNumber == nil &&
		p.Date == nil && p.Time == nil && p.Guests == nil && p.Message == nil
}

// Fields flattens the patch into gorm column updates plus the human-readable
// names used in the admin notification.
func (p *BookingPatch) Fields() (map[string]any, []string) {
	updates := map[string]any{}
	var changed []string
	if p.Name != nil {
		updates["name"] = *p.Name
		changed = append(changed, "namn")
	}
	if p.Email != nil {
		updates["email"] = *p.Email
		changed = append(changed, "e-post")
	}
	if p.PhoneNumber != nil {
		updates["phone_number"] = *p.PhoneNumber
		changed = append(changed, "telefon")
	}
	if p.Date != nil {
		updates["date"] = *p.Date
		changed = append(changed, "datum")
	}
	if p.Time != nil {
		updates["time"] = *p.Time
		changed = append(changed, "tid")
	}
	if p.Guests != nil {
		updates["guests"] = *p.Guests
		changed = append(changed, "antal gäster")
	}
	if p.Message != nil {
		updates["message"] = *p.Message
		changed = append(changed, "meddelande")
	}
	return updates, changed
}

// Create takes a new booking as pending and tells the staff. userID is nil
// for bookings made without an account.
func (s *BookingService) Create(ctx context.Context, userID *uint, in *CreateBookingIn) (*entity.Booking, error) {
	if in.Guests <= 0 {
		return nil, errors.New("guests must be at least 1")
	}

	b := entity.Booking{
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Date:        in.Date,
		Time:        in.Time,
		Guests:      in.Guests,
		Message:     in.Message,
		Status:      entity.BookingPending,
		UserID:      userID,
	}
	if err := s.Repo.Create(&b); err != nil {
		return nil, err
	}

	s.Notifier.NotifyAdmins(ctx, NewBookingPayload(&b))
	return &b, nil
}

// Newest first; replaces the client's cached list wholesale.
func (s *BookingService) ListForUser(userID uint) ([]entity.Booking, error) {
	return s.Repo.ListForUser(userID)
}

func (s *BookingService) ListAll() ([]entity.Booking, error) {
	return s.Repo.ListAll()
}

// Cancel is the user-side edge: allowed only from pending or confirmed.
// Terminal bookings are re-checked here, not just hidden in the UI. The
// guarded update closes the remaining race window.
func (s *BookingService) Cancel(ctx context.Context, callerID uint, role string, id uint) error {
	b, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if err := s.authorize(b, callerID, role); err != nil {
		return err
	}
	if b.Status.Terminal() {
		return ErrInvalidTransition
	}

	affected, err := s.Repo.CancelGuard(b.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	b.Status = entity.BookingCancelled
	s.Notifier.NotifyAdmins(ctx, BookingCancelledPayload(b))

	if s.Events != nil && b.UserID != nil {
		s.Events.Publish(*b.UserID, ws.Event{Type: "booking_cancelled", Data: map[string]any{"bookingId": b.ID}})
	}
	return nil
}

// Update applies a sparse patch to an editable booking and tells the staff
// which fields moved. An empty patch never reaches the store.
func (s *BookingService) Update(ctx context.Context, callerID uint, role string, id uint, patch *BookingPatch) (*entity.Booking, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Guests != nil && *patch.Guests <= 0 {
		return nil, errors.New("guests must be at least 1")
	}

	b, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(b, callerID, role); err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	updates, changed := patch.Fields()
	if err := s.Repo.Patch(b.ID, updates); err != nil {
		return nil, err
	}

	fresh, err := s.Repo.Get(b.ID)
	if err != nil {
		// the patch itself succeeded; use the pre-patch copy for the notification
		fresh = b
	}

	s.Notifier.NotifyAdmins(ctx, BookingUpdatedPayload(fresh, changed))
	return fresh, nil
}

// ----- Admin edges of the state machine -----

func (s *BookingService) Confirm(ctx context.Context, id uint) error {
	b, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(id, entity.BookingPending, entity.BookingConfirmed)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	if b.UserID != nil {
		s.Notifier.NotifyUser(ctx, *b.UserID, BookingConfirmedPayload(b))
	}
	return nil
}

func (s *BookingService) Complete(ctx context.Context, id uint) error {
	affected, err := s.Repo.UpdateStatusGuard(id, entity.BookingConfirmed, entity.BookingCompleted)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *BookingService) authorize(b *entity.Booking, callerID uint, role string) error {
	if role == "admin" {
		return nil
	}
	if b.UserID == nil || *b.UserID != callerID {
		return ErrForbidden
	}
	return nil
}
