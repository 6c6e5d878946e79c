package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertOwner(t *testing.T) {
	event := &Event{CreatedBy: "65a1f0c2e4b0a1b2c3d4e5f6"}
	post := &Post{AuthorID: "user-1"}

	tests := []struct {
		name     string
		resource Owned
		caller   Principal
		want     error
	}{
		{"event owner", event, Principal{UserID: "65a1f0c2e4b0a1b2c3d4e5f6", Role: RoleBusiness}, nil},
		{"event owner different case", event, Principal{UserID: "65A1F0C2E4B0A1B2C3D4E5F6"}, nil},
		{"event stranger", event, Principal{UserID: "65a1f0c2e4b0a1b2c3d4e5f7", Role: RoleBusiness}, ErrNotOwner},
		{"post owner", post, Principal{UserID: " user-1 "}, nil},
		{"post stranger", post, Principal{UserID: "user-2"}, ErrNotOwner},
		{"anonymous caller", post, Principal{}, ErrMissingPrincipal},
		{"resource without owner", &Post{}, Principal{UserID: "user-1"}, ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertOwner(tt.resource, tt.caller)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAssertOwner_ErrorKinds(t *testing.T) {
	err := AssertOwner(&Event{CreatedBy: "a"}, Principal{UserID: "b"})
	assert.True(t, errors.Is(err, ErrForbidden))

	err = AssertOwner(&Event{CreatedBy: "a"}, Principal{})
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}
