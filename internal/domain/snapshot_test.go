package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func ev(id string, startHour, endHour int, kind SourceKind, loc LocationID) Event {
	return Event{
		ID:         id,
		Start:      time.Date(2026, 10, 7, startHour, 0, 0, 0, jst),
		End:        time.Date(2026, 10, 7, endHour, 0, 0, 0, jst),
		Location:   loc,
		SourceKind: kind,
	}
}

func TestNewSnapshot(t *testing.T) {
	generated := time.Date(2026, 10, 5, 8, 0, 0, 0, jst)

	tests := []struct {
		name      string
		trainer   []Event
		locations map[LocationID][]Event
		wantErr   error
	}{
		{
			name:    "valid",
			trainer: []Event{ev("b", 12, 13, SourceTrainerWork, ""), ev("a", 10, 11, SourceTrainerPrivate, "")},
			locations: map[LocationID][]Event{
				"ebisu": {ev("x", 10, 11, SourceLocation, "ebisu")},
			},
		},
		{
			name:    "end before start",
			trainer: []Event{ev("a", 11, 10, SourceTrainerWork, "")},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "zero length",
			trainer: []Event{ev("a", 10, 10, SourceTrainerWork, "")},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "missing id",
			trainer: []Event{ev("", 10, 11, SourceTrainerWork, "")},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "missing start",
			trainer: []Event{{ID: "a", End: time.Date(2026, 10, 7, 10, 0, 0, 0, jst), SourceKind: SourceTrainerWork}},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "unknown source kind",
			trainer: []Event{ev("a", 10, 11, "calendar", "")},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "duplicate trainer id",
			trainer: []Event{ev("a", 10, 11, SourceTrainerWork, ""), ev("a", 12, 13, SourceTrainerPrivate, "")},
			wantErr: ErrDuplicateEventID,
		},
		{
			name: "duplicate location id",
			locations: map[LocationID][]Event{
				"ebisu": {ev("x", 10, 11, SourceLocation, "ebisu"), ev("x", 12, 13, SourceLocation, "ebisu")},
			},
			wantErr: ErrDuplicateEventID,
		},
		{
			name: "same id in different collections",
			trainer: []Event{ev("x", 10, 11, SourceTrainerWork, "ebisu")},
			locations: map[LocationID][]Event{
				"ebisu": {ev("x", 10, 11, SourceLocation, "ebisu")},
			},
		},
		{
			name:    "location event in trainer collection",
			trainer: []Event{ev("a", 10, 11, SourceLocation, "ebisu")},
			wantErr: ErrMisplacedEvent,
		},
		{
			name: "event tagged with other location",
			locations: map[LocationID][]Event{
				"ebisu": {ev("x", 10, 11, SourceLocation, "hanzomon")},
			},
			wantErr: ErrMisplacedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := NewSnapshot(generated, tt.trainer, tt.locations)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, snap)
				return
			}
			require.NoError(t, err)
			assert.True(t, snap.IsValidated())
			assert.Equal(t, generated, snap.GeneratedAt())
		})
	}
}

func TestSnapshot_CopiesAndSorts(t *testing.T) {
	trainer := []Event{ev("b", 12, 13, SourceTrainerWork, ""), ev("a", 10, 11, SourceTrainerPrivate, "")}

	snap, err := NewSnapshot(time.Now(), trainer, map[LocationID][]Event{"ebisu": nil, "hanzomon": nil})
	require.NoError(t, err)

	trainer[0].ID = "mutated"

	got := snap.TrainerEvents()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, []LocationID{"ebisu", "hanzomon"}, snap.Locations())
	assert.Equal(t, map[string]int{"trainer": 2, "ebisu": 0, "hanzomon": 0}, snap.Counts())

	private := snap.PrivateEvents()
	require.Len(t, private, 1)
	assert.Equal(t, "a", private[0].ID)
}

func TestSnapshot_ZeroValueIsNotValidated(t *testing.T) {
	var nilSnap *Snapshot
	assert.False(t, nilSnap.IsValidated())
	assert.False(t, (&Snapshot{}).IsValidated())
}

func TestEvent_IsAllDayOn(t *testing.T) {
	day := time.Date(2026, 10, 7, 15, 0, 0, 0, jst)
	allDay := Event{
		Start: time.Date(2026, 10, 7, 0, 0, 0, 0, jst),
		End:   time.Date(2026, 10, 7, 23, 59, 59, 0, jst),
	}

	assert.True(t, allDay.IsAllDayOn(day, jst))
	assert.False(t, allDay.IsAllDayOn(day.AddDate(0, 0, 1), jst))
	// в UTC то же событие не начинается в полночь
	assert.False(t, allDay.IsAllDayOn(day, time.UTC))

	partial := Event{
		Start: time.Date(2026, 10, 7, 0, 0, 0, 0, jst),
		End:   time.Date(2026, 10, 7, 12, 0, 0, 0, jst),
	}
	assert.False(t, partial.IsAllDayOn(day, jst))
}

func TestEvent_Overlaps(t *testing.T) {
	e := ev("a", 10, 11, SourceTrainerWork, "")
	at := func(h, m int) time.Time { return time.Date(2026, 10, 7, h, m, 0, 0, jst) }

	assert.True(t, e.Overlaps(at(10, 30), at(11, 30)))
	assert.True(t, e.Overlaps(at(9, 0), at(12, 0)))
	assert.False(t, e.Overlaps(at(11, 0), at(12, 0)))
	assert.False(t, e.Overlaps(at(9, 0), at(10, 0)))
}

func TestOverrideMaps(t *testing.T) {
	o := OverrideMaps{
		Private:       map[string]bool{"p-false": false, "p-true": true},
		FacilityHolds: map[string]bool{"h-true": true, "h-false": false},
	}

	assert.True(t, o.PrivateSuppressed("p-false"))
	assert.False(t, o.PrivateSuppressed("p-true"))
	assert.False(t, o.PrivateSuppressed("absent"))
	assert.True(t, o.HoldIgnored("h-true"))
	assert.False(t, o.HoldIgnored("h-false"))
	assert.False(t, o.HoldIgnored("absent"))

	var empty OverrideMaps
	assert.False(t, empty.PrivateSuppressed("x"))
	assert.False(t, empty.HoldIgnored("x"))
}
