package reminder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/storage"
)

type scheduled struct {
	trigger Trigger
	content Content
}

// fakeScheduler records calls and fails the call numbered failOn (1-based).
type fakeScheduler struct {
	scheduled []scheduled
	cancelled []string
	failOn    int
	cancelErr error
	calls     int
}

func (f *fakeScheduler) ScheduleWeekly(_ context.Context, trigger Trigger, content Content) (string, error) {
	f.calls++
	if f.calls == f.failOn {
		return "", errors.New("permission denied")
	}
	f.scheduled = append(f.scheduled, scheduled{trigger, content})
	return fmt.Sprintf("n%d", f.calls), nil
}

func (f *fakeScheduler) Cancel(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	return f.cancelErr
}

func gym() models.Activity {
	return models.Activity{ID: 7, Title: "Gym", Day: models.Monday, StartHour: 9, EndHour: 10}
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Handle
		wantErr bool
	}{
		{name: "composite", in: `{"advance":"a1","main":"m1"}`, want: Handle{Advance: "a1", Main: "m1"}},
		{name: "main only", in: `{"main":"m1"}`, want: Handle{Main: "m1"}},
		{name: "legacy bare id", in: "abc-123", want: Handle{Main: "abc-123"}},
		{name: "empty", in: "  ", wantErr: true},
		{name: "broken json", in: `{"advance":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHandle(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleEncodeMatchesStoredShape(t *testing.T) {
	assert.Equal(t, `{"advance":"a1","main":"m1"}`, Handle{Advance: "a1", Main: "m1"}.Encode())
	assert.Equal(t, []string{"a1", "m1"}, Handle{Advance: "a1", Main: "m1"}.IDs())
	assert.Empty(t, Handle{}.IDs())
}

func TestBindSchedulesAdvanceAndMain(t *testing.T) {
	sched := &fakeScheduler{}
	b := NewBinding(sched, 5)

	handle, ok := b.Bind(context.Background(), gym())
	require.True(t, ok)
	assert.Equal(t, `{"advance":"n1","main":"n2"}`, handle)

	require.Len(t, sched.scheduled, 2)
	assert.Equal(t, Trigger{Weekday: 1, Hour: 8, Minute: 55}, sched.scheduled[0].trigger)
	assert.Equal(t, "Coming up in 5 minutes: Gym", sched.scheduled[0].content.Body)
	assert.Equal(t, Trigger{Weekday: 1, Hour: 9, Minute: 0}, sched.scheduled[1].trigger)
	assert.Equal(t, "Time to do: Gym", sched.scheduled[1].content.Body)
}

func TestBindWeekdayMapping(t *testing.T) {
	want := map[models.Weekday]int{
		models.Sunday: 0, models.Monday: 1, models.Tuesday: 2, models.Wednesday: 3,
		models.Thursday: 4, models.Friday: 5, models.Saturday: 6,
	}
	for day, n := range want {
		sched := &fakeScheduler{}
		a := gym()
		a.Day = day
		_, ok := NewBinding(sched, 5).Bind(context.Background(), a)
		require.True(t, ok)
		assert.Equal(t, n, sched.scheduled[1].trigger.Weekday, day)
	}
}

func TestBindAdvanceWrapsWithinSameWeekday(t *testing.T) {
	sched := &fakeScheduler{}
	a := models.Activity{ID: 1, Title: "Early", Day: models.Tuesday, StartHour: 0, StartMinute: 2, EndHour: 1}

	_, ok := NewBinding(sched, 5).Bind(context.Background(), a)
	require.True(t, ok)
	assert.Equal(t, Trigger{Weekday: 2, Hour: 23, Minute: 57}, sched.scheduled[0].trigger)
}

func TestBindDefaultLead(t *testing.T) {
	sched := &fakeScheduler{}
	_, ok := NewBinding(sched, 0).Bind(context.Background(), gym())
	require.True(t, ok)
	assert.Equal(t, 55, sched.scheduled[0].trigger.Minute)
}

func TestBindAdvanceFailure(t *testing.T) {
	sched := &fakeScheduler{failOn: 1}
	handle, ok := NewBinding(sched, 5).Bind(context.Background(), gym())
	assert.False(t, ok)
	assert.Empty(t, handle)
	assert.Empty(t, sched.scheduled)
}

func TestBindMainFailureCancelsAdvance(t *testing.T) {
	sched := &fakeScheduler{failOn: 2}
	handle, ok := NewBinding(sched, 5).Bind(context.Background(), gym())
	assert.False(t, ok)
	assert.Empty(t, handle)
	assert.Equal(t, []string{"n1"}, sched.cancelled)
}

func TestBindNilScheduler(t *testing.T) {
	var b *Binding
	_, ok := b.Bind(context.Background(), gym())
	assert.False(t, ok)
	b.Unbind(context.Background(), `{"main":"x"}`)
}

func TestUnbindCancelsBoth(t *testing.T) {
	sched := &fakeScheduler{}
	NewBinding(sched, 5).Unbind(context.Background(), `{"advance":"a1","main":"m1"}`)
	assert.Equal(t, []string{"a1", "m1"}, sched.cancelled)
}

func TestUnbindSwallowsErrors(t *testing.T) {
	sched := &fakeScheduler{cancelErr: errors.New("gone")}
	b := NewBinding(sched, 5)
	b.Unbind(context.Background(), `{"advance":"a1","main":"m1"}`)
	b.Unbind(context.Background(), `{"advance":`)
	assert.Equal(t, []string{"a1", "m1"}, sched.cancelled)
}

func newTestRegistry(enabled bool) *Registry {
	r := NewRegistry(storage.NewMemory(), enabled)
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("r%d", n)
	}
	r.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return r
}

func TestRegistryDisabled(t *testing.T) {
	r := newTestRegistry(false)
	_, err := r.ScheduleWeekly(context.Background(), Trigger{Weekday: 1, Hour: 9}, Content{Title: "x"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRegistryRejectsInvalidTrigger(t *testing.T) {
	r := newTestRegistry(true)
	_, err := r.ScheduleWeekly(context.Background(), Trigger{Weekday: 7, Hour: 9}, Content{})
	assert.ErrorIs(t, err, ErrInvalidTrigger)
	_, err = r.ScheduleWeekly(context.Background(), Trigger{Weekday: 1, Hour: 24}, Content{})
	assert.ErrorIs(t, err, ErrInvalidTrigger)
}

func TestRegistryLifecycle(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(true)

	id1, err := r.ScheduleWeekly(ctx, Trigger{Weekday: 1, Hour: 9, Minute: 0}, Content{Title: "t", Body: "Time to do: Gym"})
	require.NoError(t, err)
	id2, err := r.ScheduleWeekly(ctx, Trigger{Weekday: 2, Hour: 9, Minute: 0}, Content{Title: "t", Body: "Time to do: Run"})
	require.NoError(t, err)
	assert.Equal(t, "r1", id1)
	assert.Len(t, r.List(ctx), 2)

	require.NoError(t, r.Cancel(ctx, id1))
	regs := r.List(ctx)
	require.Len(t, regs, 1)
	assert.Equal(t, id2, regs[0].ID)
	assert.Equal(t, "2026-03-02T08:00:00Z", regs[0].CreatedAt)

	assert.ErrorIs(t, r.Cancel(ctx, id1), ErrUnknownReminder)

	require.NoError(t, r.CancelAll(ctx))
	assert.Empty(t, r.List(ctx))
}

func TestRegistryDue(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(true)
	_, err := r.ScheduleWeekly(ctx, Trigger{Weekday: 1, Hour: 9, Minute: 0}, Content{Body: "monday nine"})
	require.NoError(t, err)
	_, err = r.ScheduleWeekly(ctx, Trigger{Weekday: 1, Hour: 9, Minute: 1}, Content{Body: "monday nine-oh-one"})
	require.NoError(t, err)
	_, err = r.ScheduleWeekly(ctx, Trigger{Weekday: 2, Hour: 9, Minute: 0}, Content{Body: "tuesday nine"})
	require.NoError(t, err)

	// 2026-03-02 is a Monday
	due := r.Due(ctx, time.Date(2026, 3, 2, 9, 0, 30, 0, time.Local))
	require.Len(t, due, 1)
	assert.Equal(t, "monday nine", due[0].Content.Body)

	assert.Empty(t, r.Due(ctx, time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)))
}

func TestBindThroughRegistry(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(true)
	b := NewBinding(r, 5)

	handle, ok := b.Bind(ctx, gym())
	require.True(t, ok)
	assert.Len(t, r.List(ctx), 2)

	b.Unbind(ctx, handle)
	assert.Empty(t, r.List(ctx))
}
