package repository

import (
	"fmt"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/store"
)

func (jr *JSONRepository) newGuest(id string, name string) func() (*models.User, error) {
	return func() (*models.User, error) {
		return models.NewGuest(id, name), nil
	}
}

// GetOrCreateGuest returns the profile of the guest with the given ID, creating the default
// profile the first time the guest is seen.
func (jr *JSONRepository) GetOrCreateGuest(id string, name string) (*models.User, error) {
	id = jr.guestID(id)
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	return jr.users.getOrCreate(jr.users.byID(id), func() *models.User {
		return models.NewGuest(id, name)
	})
}

// GetUserByID retrieves the User associated with the given ID without creating it.
func (jr *JSONRepository) GetUserByID(id string) (*models.User, error) {
	return jr.users.findByID(id, qerrors.UserNotFoundError)
}

// UpdateProfile shallow-merges req.Fields onto the guest's profile. Any field is accepted except
// the protected ones, which are silently ignored.
func (jr *JSONRepository) UpdateProfile(req *models.UpdateProfileRequest) (*models.User, error) {
	id := jr.guestID(req.GuestID)
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	return jr.users.upsert(jr.users.byID(id), jr.newGuest(id, req.GuestName), func(u *models.User) error {
		return mergeProfile(u, req.Fields)
	})
}

func mergeProfile(u *models.User, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return store.SkipWrite
	}

	record, err := encode(u)
	if err != nil {
		return err
	}
	for k, v := range fields {
		if contains(models.ProfileProtectedFields, k) {
			continue
		}
		record[k] = v
	}

	var merged models.User
	if err := models.Decode(record, &merged); err != nil {
		return qerrors.NewValidationError(fmt.Sprintf("invalid profile: %v", err))
	}
	*u = merged
	return nil
}

// addUnique appends s to list unless it is already there. It reports whether list changed.
func addUnique(list *[]string, s string) bool {
	if contains(*list, s) {
		return false
	}
	*list = append(*list, s)
	return true
}

func contains(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

// ValidateID checks a client supplied identifier before it is used as a record ID.
func ValidateID(id string) error {
	if id == "" {
		return qerrors.NewValidationError("id must be a non-empty string")
	}
	if len(id) > 128 {
		return qerrors.NewValidationError("id string must not be longer than 128 characters")
	}
	return nil
}
