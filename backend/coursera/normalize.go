package coursera

import (
	"strconv"
	"strings"
)

const (
	platformName  = "Coursera"
	courseURLBase = "https://coursera.org/learn/"
	defaultLevel  = "Beginner"
	defaultLang   = "English"
)

// Normalize maps an upstream course onto Course, filling the defaults the
// frontend expects.
func Normalize(raw RawCourse) Course {
	instructor := platformName
	if len(raw.InstructorIDs) > 0 {
		names := make([]string, len(raw.InstructorIDs))
		for i, id := range raw.InstructorIDs {
			names[i] = "Instructor " + id
		}
		instructor = strings.Join(names, ", ")
	}

	return Course{
		ID:          raw.ID,
		Title:       raw.Name,
		Description: description(raw),
		Instructor:  instructor,
		Price:       price(raw.S12nPrice),
		Rating:      raw.AverageFiveStarLog,
		Students:    raw.EnrolledCount,
		Image:       raw.PhotoURL,
		URL:         courseURLBase + raw.Slug,
		Platform:    platformName,
		Category:    strings.Join(raw.Categories, ", "),
		Duration:    raw.EstimatedClassWorkload,
		Language:    language(raw.PrimaryLanguages),
		Level:       level(raw.Level),
		Certificate: raw.CertificateAvailable,
		StartDate:   dateOrNil(raw.StartDate),
		EndDate:     dateOrNil(raw.EndDate),
	}
}

func NormalizeAll(raws []RawCourse) []Course {
	out := make([]Course, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}

// NormalizeLegacy keeps the raw instructor ids and omits certificate and
// schedule fields.
func NormalizeLegacy(raw RawCourse) LegacyCourse {
	instructor := platformName
	if len(raw.InstructorIDs) > 0 {
		instructor = strings.Join(raw.InstructorIDs, ", ")
	}
	return LegacyCourse{
		ID:          raw.ID,
		Title:       raw.Name,
		Description: description(raw),
		Instructor:  instructor,
		Price:       price(raw.S12nPrice),
		Rating:      raw.AverageFiveStarLog,
		Students:    raw.EnrolledCount,
		Image:       raw.PhotoURL,
		URL:         courseURLBase + raw.Slug,
		Platform:    platformName,
		Category:    strings.Join(raw.Categories, ", "),
		Duration:    raw.EstimatedClassWorkload,
		Language:    language(raw.PrimaryLanguages),
		Level:       level(raw.Level),
	}
}

func description(raw RawCourse) string {
	if raw.Description != "" {
		return raw.Description
	}
	return raw.ShortDescription
}

func price(v interface{}) string {
	switch p := v.(type) {
	case string:
		if p != "" {
			return p
		}
	case float64:
		if p != 0 {
			return strconv.FormatFloat(p, 'f', -1, 64)
		}
	}
	return "Free"
}

func language(langs []string) string {
	if len(langs) > 0 {
		return langs[0]
	}
	return defaultLang
}

func level(l string) string {
	if l == "" {
		return defaultLevel
	}
	return l
}

func dateOrNil(v interface{}) interface{} {
	switch d := v.(type) {
	case nil:
		return nil
	case string:
		if d == "" {
			return nil
		}
	case float64:
		if d == 0 {
			return nil
		}
	}
	return v
}
