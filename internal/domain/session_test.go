package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(status SessionStatus) *Session {
	return &Session{
		ID:               "s1",
		Name:             "Q1",
		Status:           status,
		StartDate:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		SprintCount:      5,
		SprintLengthDays: 14,
	}
}

func TestSessionTransitions(t *testing.T) {
	cases := []struct {
		from, to SessionStatus
		ok       bool
	}{
		{SessionDraft, SessionPlanning, true},
		{SessionPlanning, SessionActive, true},
		{SessionActive, SessionLocked, true},
		{SessionLocked, SessionActive, true},
		{SessionActive, SessionCompleted, true},
		{SessionLocked, SessionCompleted, true},
		{SessionCompleted, SessionDraft, false},
		{SessionCompleted, SessionActive, false},
		{SessionDraft, SessionActive, false},
		{SessionPlanning, SessionDraft, false},
	}

	for _, tc := range cases {
		s := newSession(tc.from)
		err := s.Transition(tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, s.Status)
		} else {
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, s.Status, "status unchanged on refusal")
		}
	}
}

func TestSessionEditable(t *testing.T) {
	assert.True(t, newSession(SessionDraft).Editable())
	assert.True(t, newSession(SessionPlanning).Editable())
	assert.False(t, newSession(SessionActive).Editable())
	assert.False(t, newSession(SessionLocked).Editable())
	assert.False(t, newSession(SessionCompleted).Editable())
}

func TestSessionTotalSprints(t *testing.T) {
	s := newSession(SessionDraft)
	assert.Equal(t, 5, s.TotalSprints())

	s.IncludeIPSprint = true
	assert.Equal(t, 6, s.TotalSprints())
}

func TestSessionValidate(t *testing.T) {
	s := newSession(SessionDraft)
	require.NoError(t, s.Validate())

	s.Name = ""
	assert.Error(t, s.Validate())

	s = newSession(SessionDraft)
	s.SprintCount = 0
	assert.Error(t, s.Validate())

	s = newSession(SessionDraft)
	s.SprintLengthDays = 0
	assert.Error(t, s.Validate())
}
