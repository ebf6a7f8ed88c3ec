package repository

import (
	"strings"

	"github.com/google/uuid"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/store"
)

const defaultLiveClassMinutes = 60

func (jr *JSONRepository) ListLiveClasses() ([]*models.LiveClass, error) {
	return jr.liveClasses.all()
}

func (jr *JSONRepository) GetLiveClass(id string) (*models.LiveClass, error) {
	return jr.liveClasses.findByID(id, qerrors.LiveClassNotFoundError)
}

func (jr *JSONRepository) CreateLiveClass(req *models.CreateLiveClassRequest) (*models.LiveClass, error) {
	lc := &models.LiveClass{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		ScheduledAt:   req.ScheduledAt,
		Duration:      req.Duration,
		HostGuestID:   jr.guestID(req.HostGuestID),
		HostGuestName: req.HostGuestName,
		CreatedAt:     jr.now().UTC(),
	}
	if lc.Duration == 0 {
		lc.Duration = defaultLiveClassMinutes
	}
	if lc.HostGuestName == "" {
		lc.HostGuestName = models.DefaultGuestName
	}

	if err := jr.liveClasses.insert(lc); err != nil {
		return nil, err
	}
	return lc, nil
}

// UpdateLiveClassStatus moves a live class along scheduled -> active -> completed. Asking for the
// current state is a no-op.
func (jr *JSONRepository) UpdateLiveClassStatus(req *models.UpdateLiveClassStatusRequest) (*models.LiveClass, error) {
	target, err := requestedStatus(req)
	if err != nil {
		return nil, err
	}

	return jr.liveClasses.update(jr.liveClasses.byID(req.LiveClassID), qerrors.LiveClassNotFoundError, func(lc *models.LiveClass) error {
		current := lc.Status()
		now := jr.now().UTC()

		switch {
		case current == target:
			return store.SkipWrite
		case current == models.StatusScheduled && target == models.StatusActive:
			lc.IsActive = true
			lc.StartedAt = &now
		case current == models.StatusActive && target == models.StatusCompleted:
			lc.IsActive = false
			lc.IsCompleted = true
			lc.EndedAt = &now
		default:
			return qerrors.InvalidStatusTransitionError
		}
		return nil
	})
}

func requestedStatus(req *models.UpdateLiveClassStatusRequest) (models.LiveClassStatus, error) {
	if req.IsActive == nil && req.IsCompleted == nil {
		return "", qerrors.NewValidationError("isActive or isCompleted is required")
	}

	active := req.IsActive != nil && *req.IsActive
	completed := req.IsCompleted != nil && *req.IsCompleted

	switch {
	case active && completed:
		return "", qerrors.ConflictingStatusError
	case completed:
		return models.StatusCompleted, nil
	case active:
		return models.StatusActive, nil
	default:
		return models.StatusScheduled, nil
	}
}
