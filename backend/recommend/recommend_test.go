package recommend

import (
	"testing"

	"learngenie/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords(t *testing.T) {
	profile := &models.UserProfile{
		TwelfthStream:   "Science",
		Degree:          "B.Tech, Computer Science",
		AreasOfInterest: []string{" AI ", "science", "", "Cloud,Design"},
	}

	assert.Equal(t, []string{"science", "b.tech", "computer science", "ai", "cloud", "design"}, Keywords(profile))
	assert.Nil(t, Keywords(nil))
}

func TestRankOrdersByMatchCount(t *testing.T) {
	candidates := []Candidate{
		{Source: SourceLocal, Title: "Cooking basics", Course: "c0"},
		{Source: SourceCoursera, Title: "Intro to AI", Category: "Computer Science", Course: "c1"},
		{Source: SourceLocal, Title: "Cloud design patterns", Description: "AI ready", Course: "c2"},
		{Source: SourceCoursera, Title: "Applied AI", Course: "c3"},
	}

	recs := Rank([]string{"ai", "cloud", "design", "computer science"}, candidates)
	require.Len(t, recs, 3)
	assert.Equal(t, "c2", recs[0].Course)
	assert.Equal(t, 3, recs[0].MatchCount)
	assert.Equal(t, "c1", recs[1].Course)
	assert.Equal(t, 2, recs[1].MatchCount)
	assert.Equal(t, "c3", recs[2].Course)
	assert.Equal(t, SourceCoursera, recs[2].Source)
}

func TestRankWithoutKeywords(t *testing.T) {
	recs := Rank(nil, []Candidate{{Title: "anything"}})
	assert.Empty(t, recs)
}

func TestPage(t *testing.T) {
	recs := make([]Recommendation, 19)
	for i := range recs {
		recs[i] = Recommendation{MatchCount: i}
	}

	first, total := Page(recs, 1, 8)
	assert.Len(t, first, 8)
	assert.Equal(t, 3, total)

	last, _ := Page(recs, 3, 8)
	assert.Len(t, last, 3)
	assert.Equal(t, 16, last[0].MatchCount)

	beyond, _ := Page(recs, 4, 8)
	assert.Empty(t, beyond)

	def, _ := Page(recs, 0, 0)
	assert.Len(t, def, DefaultPerPage)
}
