package models

import (
	"encoding/json"
)

const (
	RoleGuest = "guest"

	DefaultGuestName  = "Guest User"
	DefaultGuestEmail = "guest@sarvasva.com"
)

// User is a guest visitor. There are no accounts: a User is created the first time an unknown
// guest identity asks for its profile.
type User struct {
	ID               string   `json:"id" mapstructure:"id"`
	Role             string   `json:"role" mapstructure:"role"`
	Name             string   `json:"name" mapstructure:"name"`
	Email            string   `json:"email" mapstructure:"email"`
	Credits          int      `json:"credits" mapstructure:"credits"`
	Skills           []string `json:"skills" mapstructure:"skills"`
	Bio              string   `json:"bio" mapstructure:"bio"`
	EnrolledCourses  []string `json:"enrolledCourses" mapstructure:"enrolledCourses"`
	CompletedCourses []string `json:"completedCourses" mapstructure:"completedCourses"`
	CreatedCourses   []string `json:"createdCourses" mapstructure:"createdCourses"`

	// Extra holds profile fields the client sent that have no dedicated field above.
	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// NewGuest returns the default profile for a guest identity.
func NewGuest(id string, name string) *User {
	if name == "" {
		name = DefaultGuestName
	}

	return &User{
		ID:               id,
		Role:             RoleGuest,
		Name:             name,
		Email:            DefaultGuestEmail,
		Credits:          0,
		Skills:           []string{},
		EnrolledCourses:  []string{},
		CompletedCourses: []string{},
		CreatedCourses:   []string{},
	}
}

// MarshalJSON flattens Extra into the object. Named fields win over extras with the same key.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	b, err := json.Marshal(plain(u))
	if err != nil || len(u.Extra) == 0 {
		return b, err
	}

	merged := make(map[string]interface{}, len(u.Extra))
	for k, v := range u.Extra {
		merged[k] = v
	}
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}

	return json.Marshal(merged)
}

func (u *User) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	return Decode(raw, u)
}

// ProfileProtectedFields cannot be changed through a profile update. Credits only move through
// the ledger.
var ProfileProtectedFields = []string{"id", "_id", "role", "credits"}

// UpdateProfileRequest is the parameter struct for the UpdateProfile function.
type UpdateProfileRequest struct {
	// Will be set from context
	GuestID   string
	GuestName string
	// Fields is the raw request body, shallow-merged onto the stored profile.
	Fields map[string]interface{}
}
