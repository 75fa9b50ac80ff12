package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantKeyIsOrderInsensitive(t *testing.T) {
	a := &Conversation{Participants: []string{"u1", "u2", "u3"}}
	b := &Conversation{Participants: []string{"u3", "u1", "u2"}}
	c := &Conversation{Participants: []string{"u1", "u2"}}

	assert.Equal(t, a.ParticipantKey(), b.ParticipantKey())
	assert.NotEqual(t, a.ParticipantKey(), c.ParticipantKey())
}

func TestParticipantKeyDoesNotMutateInput(t *testing.T) {
	participants := []string{"z", "a", "m"}
	ParticipantKey(participants)
	assert.Equal(t, []string{"z", "a", "m"}, participants)
}
