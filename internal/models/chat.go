package models

// Chat is the discussion room of a course. There is at most one Chat per course.
type Chat struct {
	ID           string        `json:"id" mapstructure:"id"`
	CourseID     string        `json:"courseId" mapstructure:"courseId"`
	Participants []Participant `json:"participants" mapstructure:"participants"`
	Messages     []Message     `json:"messages" mapstructure:"messages"`
}

type Participant struct {
	GuestID   string `json:"guestId" mapstructure:"guestId"`
	GuestName string `json:"guestName,omitempty" mapstructure:"guestName"`
}

// Message is append-only. Timestamps are epoch milliseconds and never decrease within a Chat.
type Message struct {
	ID        string `json:"id" mapstructure:"id"`
	GuestID   string `json:"guestId" mapstructure:"guestId"`
	GuestName string `json:"guestName,omitempty" mapstructure:"guestName"`
	Message   string `json:"message" mapstructure:"message"`
	Timestamp int64  `json:"timestamp" mapstructure:"timestamp"`
}

// GetChatRequest is the parameter struct to the GetOrCreateChat function.
type GetChatRequest struct {
	CourseID  string
	GuestID   string
	GuestName string
}

// SendMessageRequest is the parameter struct to the SendMessage function.
type SendMessageRequest struct {
	CourseID  string `json:"-"`
	GuestID   string `json:"-"`
	GuestName string `json:"-"`
	Message   string `json:"message" validate:"required"`
}
