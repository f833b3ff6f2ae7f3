package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routine/internal/models"
)

func act(id int64, title string, day models.Weekday, sh, sm, eh, em int) models.Activity {
	return models.Activity{
		ID: id, Title: title, Day: day,
		StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em,
	}
}

func TestOverlaps(t *testing.T) {
	gym := act(1, "Gym", models.Monday, 9, 0, 10, 0)
	tests := []struct {
		name      string
		candidate models.Activity
		want      bool
	}{
		{"inside", act(0, "c", models.Monday, 9, 15, 9, 45), true},
		{"covers", act(0, "c", models.Monday, 8, 0, 11, 0), true},
		{"tail overlap", act(0, "c", models.Monday, 9, 30, 10, 30), true},
		{"head overlap", act(0, "c", models.Monday, 8, 30, 9, 1), true},
		{"identical", act(0, "c", models.Monday, 9, 0, 10, 0), true},
		{"ends at start", act(0, "c", models.Monday, 7, 0, 9, 0), false},
		{"starts at end", act(0, "c", models.Monday, 10, 0, 11, 0), false},
		{"other day", act(0, "c", models.Tuesday, 9, 0, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.candidate, gym))
			assert.Equal(t, tt.want, Overlaps(gym, tt.candidate), "overlap is symmetric")
		})
	}
}

func TestHasCollisionExcludesID(t *testing.T) {
	list := []models.Activity{
		act(1, "Gym", models.Monday, 9, 0, 10, 0),
		act(2, "Read", models.Monday, 20, 0, 21, 0),
	}
	candidate := act(1, "Gym", models.Monday, 9, 30, 10, 30)

	assert.True(t, HasCollision(candidate, list, 0))
	assert.False(t, HasCollision(candidate, list, 1))
	assert.True(t, HasCollision(act(1, "Gym", models.Monday, 20, 30, 21, 30), list, 1))
	assert.False(t, HasCollision(candidate, nil, 0))
}

func TestResolveShiftsOverlapping(t *testing.T) {
	list := []models.Activity{
		act(1, "Gym", models.Monday, 9, 0, 10, 0),
		act(2, "Run", models.Tuesday, 9, 0, 10, 0),
		act(3, "Read", models.Monday, 12, 0, 12, 45),
	}
	candidate := act(9, "Call", models.Monday, 8, 30, 9, 30)

	got, err := Resolve(candidate, list, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// other days first, then the same-day set in stored order
	assert.Equal(t, list[1], got[0])
	assert.Equal(t, act(1, "Gym", models.Monday, 9, 30, 10, 30), got[1])
	assert.Equal(t, list[2], got[2])
	for _, a := range got {
		assert.NotEqual(t, candidate.ID, a.ID, "candidate is not part of the result")
	}

	assert.Equal(t, 9, list[0].StartHour, "input is not modified")
}

func TestResolvePreservesDuration(t *testing.T) {
	list := []models.Activity{
		act(1, "A", models.Friday, 10, 0, 10, 25),
		act(2, "B", models.Friday, 11, 0, 13, 10),
	}
	candidate := act(9, "Big", models.Friday, 9, 50, 11, 30)

	got, err := Resolve(candidate, list, 0)
	require.NoError(t, err)
	for i, a := range got {
		assert.Equal(t, list[i].Duration(), a.Duration(), a.Title)
		assert.Equal(t, candidate.End(), a.Start(), a.Title)
	}
}

func TestResolveUntouchedAtBoundary(t *testing.T) {
	gym := act(1, "Gym", models.Monday, 9, 0, 10, 0)
	call := act(2, "Call", models.Monday, 7, 0, 9, 0)

	got, err := Resolve(call, []models.Activity{gym}, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.Activity{gym}, got)
}

func TestResolveExcludedStaysPut(t *testing.T) {
	gym := act(1, "Gym", models.Monday, 9, 0, 10, 0)
	edited := act(1, "Gym", models.Monday, 9, 30, 10, 30)

	got, err := Resolve(edited, []models.Activity{gym}, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.Activity{gym}, got)
}

func TestResolveIsSinglePass(t *testing.T) {
	list := []models.Activity{
		act(1, "A", models.Monday, 9, 30, 10, 0),
		act(2, "B", models.Monday, 10, 15, 11, 0),
	}
	candidate := act(9, "C", models.Monday, 9, 0, 10, 0)

	got, err := Resolve(candidate, list, 0)
	require.NoError(t, err)
	assert.Equal(t, act(1, "A", models.Monday, 10, 0, 10, 30), got[0])
	// B did not overlap the candidate, so it is left alone even though the
	// moved A now runs into it
	assert.Equal(t, list[1], got[1])
	assert.True(t, Overlaps(got[0], got[1]))
}

func TestResolveOutOfRange(t *testing.T) {
	list := []models.Activity{act(1, "Late", models.Sunday, 22, 30, 23, 30)}
	candidate := act(9, "Movie", models.Sunday, 22, 0, 23, 30)

	got, err := Resolve(candidate, list, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Nil(t, got)
}

func TestResolveEndingAtLastMinute(t *testing.T) {
	list := []models.Activity{act(1, "Late", models.Sunday, 22, 30, 23, 29)}
	candidate := act(9, "Movie", models.Sunday, 22, 0, 23, 0)

	got, err := Resolve(candidate, list, 0)
	require.NoError(t, err)
	assert.Equal(t, act(1, "Late", models.Sunday, 23, 0, 23, 59), got[0])
}

func TestFreeBlocks(t *testing.T) {
	list := []models.Activity{
		act(2, "Lunch", models.Monday, 12, 0, 13, 0),
		act(1, "Gym", models.Monday, 9, 0, 10, 0),
		act(3, "Run", models.Tuesday, 10, 0, 11, 0),
	}

	got := FreeBlocks(models.Monday, list, 8*60, 18*60)
	assert.Equal(t, []Block{
		{Start: 8 * 60, End: 9 * 60},
		{Start: 10 * 60, End: 12 * 60},
		{Start: 13 * 60, End: 18 * 60},
	}, got)
	assert.Equal(t, "10:00 - 12:00", got[1].String())

	assert.Equal(t, []Block{{Start: 0, End: 1439}}, FreeBlocks(models.Sunday, list, 0, 1439))
}
