package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questday/qotd-backend/internal/domain"
)

func TestBuildAnswerIndex_DistinctUsersAndGeo(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Submitted: []string{"paris"}, Country: "fr", Region: "Europe", CreatedAt: at(0)},
		{UserID: "u1", AttemptIndex: 2, Submitted: []string{"paris"}, Country: "fr", Region: "Europe", CreatedAt: at(1)},
		{UserID: "u2", AttemptIndex: 1, Submitted: []string{"paris"}, Country: "br", Region: "Americas", CreatedAt: at(2)},
	}

	idx := BuildAnswerIndex(events)

	entry := idx.Lookup("paris")
	require.NotNil(t, entry)
	assert.Equal(t, 2, entry.PlayerCount(), "same user twice counts once")
	assert.Len(t, entry.Countries, 2)
	assert.Len(t, entry.Regions, 2)
}

func TestBuildAnswerIndex_FirstMention(t *testing.T) {
	events := []Event{
		{UserID: "late", AttemptIndex: 1, Submitted: []string{"paris"}, CreatedAt: at(5)},
		{UserID: "early", AttemptIndex: 1, Submitted: []string{"paris"}, CreatedAt: at(1)},
	}

	idx := BuildAnswerIndex(events)

	entry := idx.Lookup("paris")
	require.NotNil(t, entry)
	assert.Equal(t, "early", entry.FirstUser)
	assert.Equal(t, at(1), entry.FirstTime)
}

func TestBuildAnswerIndex_ZeroTimestampNeverWinsFirstMention(t *testing.T) {
	events := []Event{
		{UserID: "real", AttemptIndex: 1, Submitted: []string{"paris"}, CreatedAt: at(5)},
		{UserID: "broken", AttemptIndex: 1, Submitted: []string{"paris"}, CreatedAt: time.Time{}},
	}

	idx := BuildAnswerIndex(events)

	assert.Equal(t, "real", idx.Lookup("paris").FirstUser)
}

func TestBuildAnswerIndex_MarkersIgnored(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: domain.HintMarkerIndex, Submitted: []string{"paris"}, CreatedAt: at(0)},
	}

	idx := BuildAnswerIndex(events)

	assert.Zero(t, idx.Len())
}

func TestAnswerEntry_Rarity(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Submitted: []string{"rare", "common"}, CreatedAt: at(0)},
		{UserID: "u2", AttemptIndex: 1, Submitted: []string{"rare", "common"}, CreatedAt: at(1)},
		{UserID: "u3", AttemptIndex: 1, Submitted: []string{"common"}, CreatedAt: at(2)},
	}

	idx := BuildAnswerIndex(events)

	assert.True(t, idx.Lookup("rare").IsRare(), "2 users is rare")
	assert.False(t, idx.Lookup("common").IsRare(), "3 users is not")
}

func TestRanked_OrderAndTieBreaks(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Submitted: []string{"top", "tied-late", "solo"}, CreatedAt: at(2)},
		{UserID: "u2", AttemptIndex: 1, Submitted: []string{"top", "tied-early"}, CreatedAt: at(1)},
		{UserID: "u3", AttemptIndex: 1, Submitted: []string{"top", "tied-early", "tied-late"}, CreatedAt: at(3)},
	}

	idx := BuildAnswerIndex(events)
	ranked := idx.Ranked()

	require.Len(t, ranked, 4)
	assert.Equal(t, "top", ranked[0].Answer)
	assert.Equal(t, "tied-early", ranked[1].Answer, "equal counts break on earlier first mention")
	assert.Equal(t, "tied-late", ranked[2].Answer)
	assert.Equal(t, "solo", ranked[3].Answer)
}
