// internal/notification/service.go
// Notification business logic. Match notifications fan out to the
// in-app feed, the websocket hub, and the configured email/SMS channels.

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/collabhub/collabhub-backend/internal/matching"
)

// Service defines notification operations
type Service interface {
	// NotifyMatch satisfies the matching engine's Notifier contract.
	NotifyMatch(ctx context.Context, providerID int64, match *matching.Match) error

	GetUserNotifications(ctx context.Context, userID int64, limit, offset int) (*NotificationsResponse, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

type service struct {
	repo         Repository
	email        EmailProvider
	sms          SMSProvider
	hub          *Hub
	emailEnabled bool
	smsEnabled   bool
}

// Options configures optional delivery channels
type Options struct {
	Email        EmailProvider
	SMS          SMSProvider
	Hub          *Hub
	EmailEnabled bool
	SMSEnabled   bool
}

// NewService creates a new notification service
func NewService(repo Repository, opts Options) Service {
	return &service{
		repo:         repo,
		email:        opts.Email,
		sms:          opts.SMS,
		hub:          opts.Hub,
		emailEnabled: opts.EmailEnabled,
		smsEnabled:   opts.SMSEnabled,
	}
}

// NotifyMatch records a match notification and pushes it through every
// enabled channel. The in-app record is the only mandatory write; email,
// SMS and websocket delivery are best-effort.
func (s *service) NotifyMatch(ctx context.Context, providerID int64, match *matching.Match) error {
	notification := &Notification{
		UserID:  providerID,
		Type:    TypeMatch,
		Title:   "New collaboration match",
		Message: fmt.Sprintf("You matched an opportunity with a compatibility score of %d%%.", match.Score),
		Data: NotificationData{
			"match_id":       match.ID,
			"opportunity_id": match.OpportunityID,
			"model_type":     match.ModelType,
			"score":          match.Score,
			"reference":      match.Reference,
		},
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Push(providerID, "new_match", notification)
	}

	if !s.emailEnabled && !s.smsEnabled {
		return nil
	}

	contact, err := s.repo.GetUserContact(ctx, providerID)
	if err != nil {
		log.Printf("Failed to load contact for user %d: %v", providerID, err)
		return nil
	}

	if s.emailEnabled && s.email != nil && contact.Email != "" {
		email := &EmailMessage{
			To:      contact.Email,
			Subject: "You have a new collaboration match",
			Body: fmt.Sprintf(
				"Hi %s,\n\nAn opportunity matched your profile with a compatibility score of %d%%. Log in to review the details.\n",
				contact.DisplayName, match.Score,
			),
		}
		if err := s.email.SendEmail(ctx, email); err != nil {
			log.Printf("Failed to send match email to user %d: %v", providerID, err)
		}
	}

	if s.smsEnabled && s.sms != nil && contact.Phone != "" {
		sms := &SMSMessage{
			To:      contact.Phone,
			Message: fmt.Sprintf("New collaboration match (%d%% compatibility). Log in to review.", match.Score),
		}
		if err := s.sms.SendSMS(ctx, sms); err != nil {
			log.Printf("Failed to send match SMS to user %d: %v", providerID, err)
		}
	}

	return nil
}

func (s *service) GetUserNotifications(ctx context.Context, userID int64, limit, offset int) (*NotificationsResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := s.repo.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationsResponse{
		Notifications: notifications,
		TotalCount:    total,
		UnreadCount:   unread,
		HasMore:       offset+len(notifications) < total,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
