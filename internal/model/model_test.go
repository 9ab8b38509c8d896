package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleExpert.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserLabel(t *testing.T) {
	var missing *User
	assert.Equal(t, "Unknown user", missing.Label())
	assert.Equal(t, "Ada (ada@example.com)", (&User{DisplayName: "Ada", Email: "ada@example.com"}).Label())
	assert.Equal(t, "Unnamed (x@example.com)", (&User{Email: "x@example.com"}).Label())
	assert.Equal(t, "Ada", (&User{DisplayName: "Ada"}).Label())
}

func TestExpertMatches(t *testing.T) {
	e := &Expert{Name: "Marie Curie", Email: "marie@lab.fr", Bio: "Radioactivity research"}

	assert.True(t, e.Matches(""))
	assert.True(t, e.Matches("   "))
	assert.True(t, e.Matches("curie"))
	assert.True(t, e.Matches("LAB.FR"))
	assert.True(t, e.Matches("radio"))
	assert.False(t, e.Matches("physics"))
}

func TestBookingStatusCanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingDeclined, true},
		{BookingPending, BookingPending, false},
		{BookingConfirmed, BookingDeclined, false},
		{BookingDeclined, BookingConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestBookingNeedsUserSnapshot(t *testing.T) {
	assert.True(t, (&Booking{}).NeedsUserSnapshot())
	assert.True(t, (&Booking{UserDisplayName: "A"}).NeedsUserSnapshot())
	assert.False(t, (&Booking{UserDisplayName: "A", UserEmail: "a@b.c"}).NeedsUserSnapshot())
}
