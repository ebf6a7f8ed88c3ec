package repository

import (
	"strings"

	"github.com/google/uuid"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/store"
)

func (jr *JSONRepository) chatForCourse(courseID string) func(*models.Chat) bool {
	return func(c *models.Chat) bool {
		return c.CourseID == courseID
	}
}

func (jr *JSONRepository) newChat(courseID string) func() (*models.Chat, error) {
	return func() (*models.Chat, error) {
		return &models.Chat{
			ID:           uuid.New().String(),
			CourseID:     courseID,
			Participants: []models.Participant{},
			Messages:     []models.Message{},
		}, nil
	}
}

// GetOrCreateChat returns the chat of a course, creating it on first access. The caller is
// added to the participants once.
func (jr *JSONRepository) GetOrCreateChat(req *models.GetChatRequest) (*models.Chat, error) {
	guestID := jr.guestID(req.GuestID)

	return jr.chats.upsert(jr.chatForCourse(req.CourseID), jr.newChat(req.CourseID), func(c *models.Chat) error {
		if !addParticipant(c, guestID, req.GuestName) {
			return store.SkipWrite
		}
		return nil
	})
}

// SendMessage appends a message to the chat of a course, creating the chat if needed. Message
// timestamps never go backwards within a chat.
func (jr *JSONRepository) SendMessage(req *models.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, qerrors.EmptyMessageError
	}

	message := models.Message{
		ID:        uuid.New().String(),
		GuestID:   jr.guestID(req.GuestID),
		GuestName: req.GuestName,
		Message:   strings.TrimSpace(req.Message),
		Timestamp: jr.now().UnixMilli(),
	}

	_, err := jr.chats.upsert(jr.chatForCourse(req.CourseID), jr.newChat(req.CourseID), func(c *models.Chat) error {
		if n := len(c.Messages); n > 0 && c.Messages[n-1].Timestamp > message.Timestamp {
			message.Timestamp = c.Messages[n-1].Timestamp
		}
		addParticipant(c, message.GuestID, message.GuestName)
		c.Messages = append(c.Messages, message)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func addParticipant(c *models.Chat, guestID string, guestName string) bool {
	for _, p := range c.Participants {
		if p.GuestID == guestID {
			return false
		}
	}
	c.Participants = append(c.Participants, models.Participant{GuestID: guestID, GuestName: guestName})
	return true
}
