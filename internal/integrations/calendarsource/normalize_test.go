package calendarsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

func testLocations() []domain.LocationSpec {
	return []domain.LocationSpec{
		{
			ID:          "ebisu",
			DisplayName: "恵比寿",
			TagMarkers:  []string{"(恵)", "恵比寿"},
			TagPrefixes: []string{"恵 "},
			Rooms: []domain.RoomSpec{
				{Name: "A", Marker: "Aルーム"},
				{Name: "B", Marker: "Bルーム"},
			},
		},
		{
			ID:            "hanzomon",
			DisplayName:   "半蔵門",
			TagMarkers:    []string{"(半)", "半蔵門"},
			TagPrefixes:   []string{"半 "},
			MaxConcurrent: 3,
		},
	}
}

func TestTagger_LocationFor(t *testing.T) {
	tg := tagger{locations: testLocations()}

	tests := []struct {
		title string
		want  domain.LocationID
	}{
		{title: "恵 田中様", want: "ebisu"},
		{title: "（恵）田中様", want: "ebisu"},
		{title: "半蔵門 佐藤様", want: "hanzomon"},
		{title: "半 佐藤様", want: "hanzomon"},
		{title: "恵比寿→半蔵門", want: "ebisu"},
		{title: "恵田中様", want: ""},
		{title: "歯医者", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, tg.locationFor(tt.title))
		})
	}
}

func TestTagger_RoomFor(t *testing.T) {
	tg := tagger{locations: testLocations()}

	assert.Equal(t, "A", tg.roomFor("ebisu", "Aルーム 田中様"))
	assert.Equal(t, "B", tg.roomFor("ebisu", "Ｂルーム 田中様"))
	assert.Equal(t, "B", tg.roomFor("ebisu", "Aルーム→Bルーム"))
	assert.Equal(t, "", tg.roomFor("ebisu", "aルーム"))
	assert.Equal(t, "", tg.roomFor("hanzomon", "Aルーム"))
	assert.Equal(t, "", tg.roomFor("unknown", "Aルーム"))
}

func TestTagger_ToEvents(t *testing.T) {
	tg := tagger{locations: testLocations()}
	start := time.Date(2026, 10, 6, 10, 0, 0, 0, jst)
	occ := []occurrence{{ID: "a", Summary: "恵 Aルーム 田中様", Start: start, End: start.Add(time.Hour)}}

	work := tg.toEvents(Feed{ID: "work", Kind: domain.SourceTrainerWork}, occ)
	require.Len(t, work, 1)
	assert.Equal(t, domain.LocationID("ebisu"), work[0].Location)
	assert.Equal(t, "A", work[0].Room)
	assert.Equal(t, domain.SourceTrainerWork, work[0].SourceKind)

	loc := tg.toEvents(Feed{ID: "hz", Kind: domain.SourceLocation, Location: "hanzomon"}, occ)
	require.Len(t, loc, 1)
	assert.Equal(t, domain.LocationID("hanzomon"), loc[0].Location)
	assert.Empty(t, loc[0].Room)
}

func TestDedupeByID(t *testing.T) {
	events := []domain.Event{{ID: "a", Title: "first"}, {ID: "b"}, {ID: "a", Title: "second"}}

	out, dropped := dedupeByID(events)

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, []string{"a"}, dropped)
}

func TestMirrorWork(t *testing.T) {
	start := time.Date(2026, 10, 6, 10, 0, 0, 0, jst)
	trainer := []domain.Event{
		{ID: "w1", Start: start, End: start.Add(time.Hour), Location: "ebisu", SourceKind: domain.SourceTrainerWork},
		{ID: "w2", Start: start, End: start.Add(time.Hour), Location: "ebisu", SourceKind: domain.SourceTrainerWork},
		{ID: "p1", Start: start, End: start.Add(time.Hour), Location: "ebisu", SourceKind: domain.SourceTrainerPrivate},
		{ID: "w3", Start: start, End: start.Add(time.Hour), SourceKind: domain.SourceTrainerWork},
	}
	locations := map[domain.LocationID][]domain.Event{
		"ebisu":    {{ID: "w2", Start: start, End: start.Add(time.Hour), Location: "ebisu", SourceKind: domain.SourceLocation}},
		"hanzomon": nil,
	}

	n := mirrorWork(trainer, locations)

	assert.Equal(t, 1, n)
	require.Len(t, locations["ebisu"], 2)
	assert.Equal(t, "w1", locations["ebisu"][1].ID)
	assert.Equal(t, domain.SourceLocation, locations["ebisu"][1].SourceKind)
	assert.Empty(t, locations["hanzomon"])
	assert.Equal(t, domain.SourceTrainerWork, trainer[0].SourceKind)
}
