package message

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository"
)

type UseCase struct {
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewUseCase(
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Send stores a message between two devices. Content is trimmed and must
// not be empty; both parties must have profiles.
func (uc *UseCase) Send(ctx context.Context, senderDeviceID, recipientDeviceID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	sender, err := uc.profileRepo.GetByDeviceID(ctx, senderDeviceID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	recipient, err := uc.profileRepo.GetByDeviceID(ctx, recipientDeviceID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	msg := &domain.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// ConversationResponse carries a two-party thread plus the resolved ids so
// the client can tell which side is which.
type ConversationResponse struct {
	Messages      []*domain.Message `json:"messages"`
	CurrentUserID int               `json:"currentUserId"`
	OtherUserID   int               `json:"otherUserId"`
}

// Conversation returns all messages between two devices, oldest first. The
// first device id is treated as the current user.
func (uc *UseCase) Conversation(ctx context.Context, deviceID1, deviceID2 string) (*ConversationResponse, error) {
	p1, err := uc.profileRepo.GetByDeviceID(ctx, deviceID1)
	if err != nil {
		return nil, fmt.Errorf("resolve first device: %w", err)
	}
	p2, err := uc.profileRepo.GetByDeviceID(ctx, deviceID2)
	if err != nil {
		return nil, fmt.Errorf("resolve second device: %w", err)
	}

	messages, err := uc.messageRepo.Conversation(ctx, p1.ID, p2.ID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if messages == nil {
		messages = []*domain.Message{}
	}

	return &ConversationResponse{
		Messages:      messages,
		CurrentUserID: p1.ID,
		OtherUserID:   p2.ID,
	}, nil
}

// ConversationSummary is one inbox row: the partner, the latest message and
// how many of their messages are still unread.
type ConversationSummary struct {
	OtherUserID       int             `json:"otherUserId"`
	OtherUserDeviceID string          `json:"otherUserDeviceId"`
	OtherUserName     string          `json:"otherUserName"`
	OtherUserImage    string          `json:"otherUserImage"`
	LastMessage       *domain.Message `json:"lastMessage"`
	UnreadCount       int             `json:"unreadCount"`
	LastMessageAt     time.Time       `json:"lastMessageAt"`
}

// Conversations returns one summary per conversation partner, most recent
// first.
func (uc *UseCase) Conversations(ctx context.Context, deviceID string) ([]*ConversationSummary, error) {
	user, err := uc.profileRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("resolve device: %w", err)
	}

	messages, err := uc.messageRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	byPartner := map[int]*ConversationSummary{}
	for _, msg := range messages {
		otherID := msg.SenderID
		if otherID == user.ID {
			otherID = msg.RecipientID
		}

		summary, ok := byPartner[otherID]
		if !ok {
			summary = &ConversationSummary{OtherUserID: otherID}
			byPartner[otherID] = summary
		}
		if summary.LastMessage == nil || msg.CreatedAt.After(summary.LastMessage.CreatedAt) {
			summary.LastMessage = msg
			summary.LastMessageAt = msg.CreatedAt
		}
		// Unread only counts messages where the caller is the recipient.
		if msg.RecipientID == user.ID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	summaries := make([]*ConversationSummary, 0, len(byPartner))
	for otherID, summary := range byPartner {
		partner, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			uc.log.Warn("conversation partner profile missing", "profile_id", otherID, "error", err)
			summary.OtherUserName = "Unknown"
			summary.OtherUserImage = "person.circle.fill"
		} else {
			summary.OtherUserDeviceID = partner.DeviceID
			summary.OtherUserName = partner.Name
			summary.OtherUserImage = "person.circle.fill"
			if partner.ProfileImageName != nil && *partner.ProfileImageName != "" {
				summary.OtherUserImage = *partner.ProfileImageName
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
	return summaries, nil
}

// MarkRead flips unread messages sent by the other device to the caller and
// returns how many changed. Messages in the reverse direction are never
// touched.
func (uc *UseCase) MarkRead(ctx context.Context, deviceID, otherDeviceID string) (int, error) {
	user, err := uc.profileRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return 0, fmt.Errorf("resolve device: %w", err)
	}
	other, err := uc.profileRepo.GetByDeviceID(ctx, otherDeviceID)
	if err != nil {
		return 0, fmt.Errorf("resolve other device: %w", err)
	}

	count, err := uc.messageRepo.MarkRead(ctx, other.ID, user.ID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	return count, nil
}
