package models

import "time"

type LiveClassStatus string

const (
	StatusScheduled LiveClassStatus = "SCHEDULED"
	StatusActive    LiveClassStatus = "ACTIVE"
	StatusCompleted LiveClassStatus = "COMPLETED"
)

type LiveClass struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	ScheduledAt string `json:"scheduledAt" mapstructure:"scheduledAt"`
	// Duration in minutes.
	Duration      int        `json:"duration" mapstructure:"duration"`
	HostGuestID   string     `json:"hostGuestId" mapstructure:"hostGuestId"`
	HostGuestName string     `json:"hostGuestName" mapstructure:"hostGuestName"`
	IsActive      bool       `json:"isActive" mapstructure:"isActive"`
	IsCompleted   bool       `json:"isCompleted" mapstructure:"isCompleted"`
	StartedAt     *time.Time `json:"startedAt,omitempty" mapstructure:"startedAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty" mapstructure:"endedAt"`
	CreatedAt     time.Time  `json:"createdAt" mapstructure:"createdAt"`
}

// Status derives the lifecycle state from the stored flags.
func (lc *LiveClass) Status() LiveClassStatus {
	switch {
	case lc.IsCompleted:
		return StatusCompleted
	case lc.IsActive:
		return StatusActive
	default:
		return StatusScheduled
	}
}

type CreateLiveClassRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	ScheduledAt   string `json:"scheduledAt" validate:"required"`
	Duration      int    `json:"duration" validate:"gte=0"`
	HostGuestID   string `json:"hostGuestId"`
	HostGuestName string `json:"hostGuestName"`
}

// UpdateLiveClassStatusRequest carries the flags the client wants set. Absent flags are left alone.
type UpdateLiveClassStatusRequest struct {
	LiveClassID string `json:"-"`
	IsActive    *bool  `json:"isActive"`
	IsCompleted *bool  `json:"isCompleted"`
}
