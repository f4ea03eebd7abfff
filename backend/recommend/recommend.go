// Package recommend ranks courses against the keywords of a learner profile.
package recommend

import (
	"sort"
	"strings"

	"learngenie/backend/models"
)

const (
	SourceLocal    = "Learn Genie"
	SourceCoursera = "Coursera"

	DefaultPerPage = 8
)

// Candidate is a course from any source, reduced to the text fields that are
// matched against keywords. Course is returned to the caller untouched.
type Candidate struct {
	Source      string
	Title       string
	Description string
	Category    string
	Instructor  string
	Course      interface{}
}

type Recommendation struct {
	Source     string      `json:"source"`
	MatchCount int         `json:"matchCount"`
	Course     interface{} `json:"course"`
}

// Keywords collects the profile's academic fields and interests, splits
// them on commas and returns the distinct lowercase terms in order.
func Keywords(profile *models.UserProfile) []string {
	if profile == nil {
		return nil
	}
	fields := []string{profile.TwelfthStream, profile.Degree, profile.PostGrad}
	fields = append(fields, profile.AreasOfInterest...)

	seen := make(map[string]bool)
	var out []string
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			kw := strings.ToLower(strings.TrimSpace(part))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// Rank scores each candidate by the number of keywords its text contains,
// drops zero scores and orders by score, keeping input order on ties.
func Rank(keywords []string, candidates []Candidate) []Recommendation {
	if len(keywords) == 0 {
		return []Recommendation{}
	}

	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		text := strings.ToLower(strings.Join([]string{c.Title, c.Description, c.Category, c.Instructor}, " "))
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matches++
			}
		}
		if matches > 0 {
			out = append(out, Recommendation{Source: c.Source, MatchCount: matches, Course: c.Course})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchCount > out[j].MatchCount })
	return out
}

// Page returns the 1-based page of recs and the page count.
func Page(recs []Recommendation, page, perPage int) ([]Recommendation, int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	totalPages := (len(recs) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start >= len(recs) {
		return []Recommendation{}, totalPages
	}
	end := start + perPage
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end], totalPages
}
