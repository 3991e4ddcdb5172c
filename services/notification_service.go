package services

import (
	"context"
	"log"
	"sync"

	"moi-backend/pkg/push"
	"moi-backend/repository"
)

// PushGateway is the outbound delivery seam; pkg/push implements it.
type PushGateway interface {
	Send(ctx context.Context, token string, n push.Notification) error
}

// NotificationService resolves recipients and fans a payload out, one gateway
// call per device. Nothing here ever returns an error to its caller: failed
// delivery is logged and swallowed so the triggering write still reports
// success. Resolution failures count as zero recipients.
type NotificationService struct {
	Users   *repository.UserRepository
	Gateway PushGateway
}

func NewNotificationService(users *repository.UserRepository, gateway PushGateway) *NotificationService {
	return &NotificationService{Users: users, Gateway: gateway}
}

// NotifyAdmins sends to every admin with a registered token. Sends run
// concurrently and independently; one bad token cannot block the rest.
func (s *NotificationService) NotifyAdmins(ctx context.Context, n push.Notification) {
	tokens, err := s.Users.AdminPushTokens()
	if err != nil {
		log.Printf("notify admins: resolving recipients failed: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, t := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			if err := s.Gateway.Send(ctx, token, n); err != nil {
				log.Printf("push to admin failed: %v", err)
			}
		}(t)
	}
	wg.Wait()
}

// NotifyUser sends to a single user; a user without a token is skipped.
func (s *NotificationService) NotifyUser(ctx context.Context, userID uint, n push.Notification) {
	token, err := s.Users.PushTokenByID(userID)
	if err != nil {
		log.Printf("notify user %d: resolving token failed: %v", userID, err)
		return
	}
	if token == "" {
		log.Printf("notify user %d: no push token registered, skipping", userID)
		return
	}
	if err := s.Gateway.Send(ctx, token, n); err != nil {
		log.Printf("push to user %d failed: %v", userID, err)
	}
}
