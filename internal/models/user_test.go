package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserKeepsUnknownFields(t *testing.T) {
	raw := []byte(`{"id":"g1","role":"guest","name":"Ada","credits":150,"skills":["go"],"website":"https://ada.dev","age":36}`)

	var u User
	require.NoError(t, json.Unmarshal(raw, &u))

	assert.Equal(t, "g1", u.ID)
	assert.Equal(t, 150, u.Credits)
	assert.Equal(t, []string{"go"}, u.Skills)
	assert.Equal(t, "https://ada.dev", u.Extra["website"])

	out, err := json.Marshal(u)
	require.NoError(t, err)

	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "https://ada.dev", back["website"])
	assert.Equal(t, float64(36), back["age"])
	assert.Equal(t, "Ada", back["name"])
}

func TestUserNamedFieldsWinOverExtras(t *testing.T) {
	u := NewGuest("g1", "")
	u.Extra = map[string]interface{}{"name": "shadow", "theme": "dark"}

	out, err := json.Marshal(u)
	require.NoError(t, err)

	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, DefaultGuestName, back["name"])
	assert.Equal(t, "dark", back["theme"])
}

func TestLiveClassStatus(t *testing.T) {
	tests := []struct {
		name string
		lc   LiveClass
		want LiveClassStatus
	}{
		{name: "scheduled", lc: LiveClass{}, want: StatusScheduled},
		{name: "active", lc: LiveClass{IsActive: true}, want: StatusActive},
		{name: "completed", lc: LiveClass{IsCompleted: true}, want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lc.Status())
		})
	}
}
