package coursera

import (
	"context"
	"sort"
	"strings"
)

const (
	catalogPages    = 5
	catalogPageSize = 100
	popularPoolSize = 100
	statsPoolSize   = 1000
)

// Catalog fetches up to five pages of 100 courses, stopping early when the
// upstream reports no next page.
func (c *Client) Catalog(ctx context.Context) ([]Course, error) {
	var all []RawCourse
	for page := 0; page < catalogPages; page++ {
		p, err := c.ListCourses(ctx, page*catalogPageSize, catalogPageSize, "")
		if err != nil {
			return nil, err
		}
		all = append(all, p.Elements...)
		if p.Paging.Next == "" {
			break
		}
	}
	return NormalizeAll(all), nil
}

// Course returns one normalized course.
func (c *Client) Course(ctx context.Context, id string) (*Course, error) {
	raw, err := c.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course := Normalize(*raw)
	return &course, nil
}

// Search runs an upstream search. page is 1-based.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	p, err := c.ListCourses(ctx, (page-1)*limit, limit, query)
	if err != nil {
		return nil, err
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (p.Paging.Total + limit - 1) / limit
	}
	return &SearchResult{
		Courses: NormalizeAll(p.Elements),
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalResults: p.Paging.Total,
		},
	}, nil
}

// ByCategory returns the courses of one page whose categories contain
// category, case-insensitively. "all" or an empty category keeps everything.
func (c *Client) ByCategory(ctx context.Context, category string, page, limit int) ([]Course, error) {
	p, err := c.ListCourses(ctx, (page-1)*limit, limit, "")
	if err != nil {
		return nil, err
	}

	raws := p.Elements
	if category != "" && category != "all" {
		needle := strings.ToLower(category)
		filtered := raws[:0:0]
		for _, raw := range raws {
			for _, cat := range raw.Categories {
				if strings.Contains(strings.ToLower(cat), needle) {
					filtered = append(filtered, raw)
					break
				}
			}
		}
		raws = filtered
	}
	return NormalizeAll(raws), nil
}

// Popular returns the limit most enrolled courses among the first hundred.
func (c *Client) Popular(ctx context.Context, limit int) ([]Course, error) {
	p, err := c.ListCourses(ctx, 0, popularPoolSize, "")
	if err != nil {
		return nil, err
	}

	raws := append([]RawCourse(nil), p.Elements...)
	sort.SliceStable(raws, func(i, j int) bool {
		return raws[i].EnrolledCount > raws[j].EnrolledCount
	})
	if limit >= 0 && limit < len(raws) {
		raws = raws[:limit]
	}
	return NormalizeAll(raws), nil
}

// Stats aggregates enrollment, rating and the distinct languages, categories
// and levels over the first thousand courses.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	p, err := c.ListCourses(ctx, 0, statsPoolSize, "")
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalCourses: len(p.Elements),
		Languages:    []string{},
		Categories:   []string{},
		Levels:       []string{},
	}
	seenLang := map[string]bool{}
	seenCat := map[string]bool{}
	seenLevel := map[string]bool{}

	var ratingSum float64
	for _, raw := range p.Elements {
		stats.TotalEnrollments += raw.EnrolledCount
		ratingSum += raw.AverageFiveStarLog
		for _, l := range raw.PrimaryLanguages {
			if !seenLang[l] {
				seenLang[l] = true
				stats.Languages = append(stats.Languages, l)
			}
		}
		for _, cat := range raw.Categories {
			if !seenCat[cat] {
				seenCat[cat] = true
				stats.Categories = append(stats.Categories, cat)
			}
		}
		lvl := level(raw.Level)
		if !seenLevel[lvl] {
			seenLevel[lvl] = true
			stats.Levels = append(stats.Levels, lvl)
		}
	}
	if stats.TotalCourses > 0 {
		stats.AverageRating = ratingSum / float64(stats.TotalCourses)
	}
	return stats, nil
}

// Legacy returns one page in the reduced legacy shape.
func (c *Client) Legacy(ctx context.Context, page, limit int) ([]LegacyCourse, error) {
	p, err := c.ListCourses(ctx, (page-1)*limit, limit, "")
	if err != nil {
		return nil, err
	}
	out := make([]LegacyCourse, len(p.Elements))
	for i, raw := range p.Elements {
		out[i] = NormalizeLegacy(raw)
	}
	return out, nil
}
