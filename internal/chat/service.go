package chat

import (
	"context"
	"errors"
	"strings"

	"bazaar-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidTarget is returned when the listing or recipient does not exist.
	ErrInvalidTarget = errors.New("Invalid product or recipient email")
	// ErrNotAllowed is returned for sends outside the owner/non-owner pairing
	// rules.
	ErrNotAllowed = errors.New("You can't send a message to this user for this product")
)

// Placeholder profile for counterparties that cannot be resolved in the user
// directory.
const (
	placeholderName    = "User"
	placeholderPicture = "https://mdbcdn.b-cdn.net/img/Photos/new-templates/bootstrap-chat/ava1-bg.webp"
)

// ThreadUser is the counterparty profile snapshot attached to an inbox entry.
type ThreadUser struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ThreadSummary is one inbox entry: the latest message for a listing plus the
// resolved counterparty profile.
type ThreadSummary struct {
	models.Message
	User ThreadUser `json:"user"`
}

// Service derives inbox entries from the flat message log and enforces send
// authorization.
type Service struct {
	DB *gorm.DB
}

// LatestThreadsFor returns one entry per listing the identity has messages
// on, each carrying the most recent message regardless of counterparty,
// newest first. Counterparty profiles are resolved case-insensitively in one
// batch; unresolved ones get a fixed placeholder.
func (s *Service) LatestThreadsFor(ctx context.Context, email string) ([]ThreadSummary, error) {
	var msgs []models.Message
	err := s.DB.WithContext(ctx).
		Where("from_email = ? OR to_email = ?", email, email).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// msgs is newest-first, so the first message seen per listing is the
	// latest one and the resulting order is already by latest-message time.
	seen := make(map[uuid.UUID]bool)
	latest := make([]models.Message, 0)
	for _, m := range msgs {
		if seen[m.ProductID] {
			continue
		}
		seen[m.ProductID] = true
		latest = append(latest, m)
	}

	// The counterparty is "the other party" of the selected latest message
	// only, not of the whole group.
	counterparties := make([]string, 0, len(latest))
	wanted := make(map[string]bool)
	for _, m := range latest {
		other := counterparty(m, email)
		key := strings.ToLower(other)
		if !wanted[key] {
			wanted[key] = true
			counterparties = append(counterparties, key)
		}
	}

	profiles := make(map[string]ThreadUser)
	if len(counterparties) > 0 {
		var users []models.User
		err = s.DB.WithContext(ctx).
			Where("LOWER(email) IN ?", counterparties).
			Find(&users).Error
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			picture := u.Picture
			if picture == "" || picture == "undefined" {
				picture = placeholderPicture
			}
			profiles[strings.ToLower(u.Email)] = ThreadUser{Name: u.Name, Picture: picture}
		}
	}

	threads := make([]ThreadSummary, 0, len(latest))
	for _, m := range latest {
		profile, ok := profiles[strings.ToLower(counterparty(m, email))]
		if !ok {
			profile = ThreadUser{Name: placeholderName, Picture: placeholderPicture}
		}
		threads = append(threads, ThreadSummary{Message: m, User: profile})
	}
	return threads, nil
}

func counterparty(m models.Message, email string) string {
	if m.From == email {
		return m.To
	}
	return m.From
}

// SendMessage stores a message after authorization: sellers may only reply to
// buyers who already wrote about the listing, and only owner/non-owner pairs
// may converse about a listing.
func (s *Service) SendMessage(ctx context.Context, from, to, body string, productID uuid.UUID) error {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTarget
		}
		return err
	}
	var recipient models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", to).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTarget
		}
		return err
	}

	if product.UserEmail == from {
		// Sellers may only reply, not cold-open.
		var prior models.Message
		err := s.DB.WithContext(ctx).
			Where("product_id = ? AND from_email = ?", productID, to).
			First(&prior).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAllowed
			}
			return err
		}
	}

	if product.UserEmail != to && product.UserEmail != from {
		return ErrNotAllowed
	}

	msg := &models.Message{
		From:      from,
		To:        to,
		Body:      body,
		ProductID: productID,
	}
	return s.DB.WithContext(ctx).Create(msg).Error
}

// MessagesBetween returns the full two-way thread for one listing.
func (s *Service) MessagesBetween(ctx context.Context, me, other string, productID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.WithContext(ctx).
		Where("(from_email = ? AND to_email = ? AND product_id = ?) OR (to_email = ? AND from_email = ? AND product_id = ?)",
			me, other, productID, me, other, productID).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// DeleteThread removes all of the identity's messages for one listing and
// reports how many were removed.
func (s *Service) DeleteThread(ctx context.Context, me string, productID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("(from_email = ? AND product_id = ?) OR (to_email = ? AND product_id = ?)",
			me, productID, me, productID).
		Delete(&models.Message{})
	return res.RowsAffected, res.Error
}

// MarkRead flips the read flag on the given messages.
func (s *Service) MarkRead(ctx context.Context, ids []uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error
}

// UnreadCount counts unread messages addressed to the identity.
func (s *Service) UnreadCount(ctx context.Context, email string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("to_email = ? AND is_read = ?", email, false).
		Count(&count).Error
	return count, err
}
