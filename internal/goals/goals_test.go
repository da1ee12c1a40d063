package goals

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *session.State {
	t.Helper()
	m := session.NewManager(time.Minute, models.Profile{})
	return m.Create()
}

func TestAddThenRemove_ReturnsToEmpty(t *testing.T) {
	s := newState(t)
	Begin(s)

	g := Add(s)
	require.Len(t, s.DraftGoals, 1)
	assert.Equal(t, "", g.Name)
	assert.True(t, g.Amount.IsZero())
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), g.TargetDate, time.Minute)

	require.True(t, Remove(s, g.ID))
	assert.Empty(t, s.DraftGoals)
}

func TestRemove_UnknownID(t *testing.T) {
	s := newState(t)
	Begin(s)
	Add(s)

	assert.False(t, Remove(s, uuid.New()))
	assert.Len(t, s.DraftGoals, 1)
}

func TestUpdate(t *testing.T) {
	s := newState(t)
	Begin(s)
	g := Add(s)

	target := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	err := Update(s, g.ID, Fields{
		Name:       "emergency fund",
		Amount:     decimal.NewFromInt(5000),
		TargetDate: target,
	})
	require.NoError(t, err)

	got := s.DraftGoals[0]
	assert.Equal(t, g.ID, got.ID, "ID must stay stable across updates")
	assert.Equal(t, "emergency fund", got.Name)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, got.TargetDate.Equal(target))
}

func TestUpdate_NegativeAmountRejected(t *testing.T) {
	s := newState(t)
	Begin(s)
	g := Add(s)
	require.NoError(t, Update(s, g.ID, Fields{Name: "car", Amount: decimal.NewFromInt(100)}))

	err := Update(s, g.ID, Fields{Name: "car", Amount: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	// The goal is unchanged after the rejected update.
	assert.Equal(t, "car", s.DraftGoals[0].Name)
	assert.True(t, s.DraftGoals[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestUpdate_UnknownID(t *testing.T) {
	s := newState(t)
	Begin(s)
	Add(s)

	err := Update(s, uuid.New(), Fields{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestBegin_SeedsFromProfileOnce(t *testing.T) {
	s := newState(t)
	s.Profile.Goals = []models.Goal{{ID: uuid.New(), Name: "saved"}}

	Begin(s)
	require.Len(t, s.DraftGoals, 1)
	assert.Equal(t, "saved", s.DraftGoals[0].Name)

	// A second Begin must not clobber in-progress edits.
	Add(s)
	Begin(s)
	assert.Len(t, s.DraftGoals, 2)
}

func TestSave_CopiesDraftToProfileOnly(t *testing.T) {
	s := newState(t)
	Begin(s)
	g := Add(s)
	require.NoError(t, Update(s, g.ID, Fields{Name: "house", Amount: decimal.NewFromInt(1)}))

	Save(s)
	require.Len(t, s.Profile.Goals, 1)
	assert.Equal(t, "house", s.Profile.Goals[0].Name)

	// Further draft edits stay provisional until the next Save.
	Remove(s, g.ID)
	assert.Len(t, s.Profile.Goals, 1)
}
