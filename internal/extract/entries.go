package extract

import (
	"regexp"
	"strings"

	"github.com/careerstack/resumegest/internal/layout"
	"github.com/careerstack/resumegest/internal/resume"
)

// Entry clustering: a sub-grouping pass over a section's lines that
// detects repeating "title + organization + date-range" clusters. It
// works on semantic adjacency (date ranges, bullets, keyword shapes)
// rather than geometry.

var (
	degreeRe = regexp.MustCompile(`(?i)\b(bachelor(?:'s)?|master(?:'s)?|doctor(?:ate)?|ph\.?d|b\.?s(?:c)?\.?|m\.?s(?:c)?\.?|b\.?a\.?|m\.?b\.?a\.?|b\.?eng\.?|associate|diploma)\b`)
	schoolRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy|polytechnic)\b`)

	bulletPrefixes = []string{"• ", "- ", "* ", "– ", "— ", "· ", "▪ ", "◦ "}
)

func isBullet(text string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func stripBullet(text string) string {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(text, p) {
			return strings.TrimSpace(strings.TrimPrefix(text, p))
		}
	}
	return text
}

// splitTitleOrg splits an entry header like "Engineer at Acme" or
// "Engineer, Acme" into its title and organization parts.
func splitTitleOrg(text string) (title, org string) {
	for _, sep := range []string{" at ", " @ ", " — ", " – ", " | ", ", ", " - "} {
		if i := strings.Index(text, sep); i > 0 {
			return trimSeparators(text[:i]), trimSeparators(text[i+len(sep):])
		}
	}
	return trimSeparators(text), ""
}

// startsExperienceEntry reports whether a line opens a new experience
// entry: it carries a date range, or a "title at organization" shape.
func startsExperienceEntry(text string) bool {
	if FindDateRange(text) != "" {
		return true
	}
	return strings.Contains(text, " at ") || strings.Contains(text, " @ ")
}

func parseExperienceHeader(text string) resume.ExperienceEntry {
	entry := resume.ExperienceEntry{Dates: FindDateRange(text)}
	entry.Title, entry.Organization = splitTitleOrg(StripDates(text))
	return entry
}

// groupExperience clusters a section's body lines into entries.
func groupExperience(lines []layout.Line) []resume.ExperienceEntry {
	var entries []resume.ExperienceEntry
	var cur *resume.ExperienceEntry

	flush := func() {
		if cur != nil {
			entries = append(entries, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		text := line.Text
		if isBullet(text) {
			if cur == nil {
				cur = &resume.ExperienceEntry{}
			}
			cur.Highlights = append(cur.Highlights, stripBullet(text))
			continue
		}
		if startsExperienceEntry(text) || cur == nil {
			flush()
			e := parseExperienceHeader(text)
			cur = &e
			continue
		}
		// Continuation line: a short bare line right under the header
		// is the organization when the header didn't carry one.
		if cur.Organization == "" && len(cur.Highlights) == 0 && len(strings.Fields(text)) <= 6 {
			cur.Organization = trimSeparators(text)
			continue
		}
		cur.Highlights = append(cur.Highlights, text)
	}
	flush()
	return entries
}

// startsEducationEntry reports whether a line opens a new education
// entry: a degree or school keyword, or a date range.
func startsEducationEntry(text string) bool {
	return degreeRe.MatchString(text) || schoolRe.MatchString(text) || FindDateRange(text) != ""
}

func parseEducationHeader(text string) resume.EducationEntry {
	entry := resume.EducationEntry{Dates: FindDateRange(text)}
	rest := StripDates(text)

	if i := strings.Index(rest, ", "); i > 0 {
		left, right := trimSeparators(rest[:i]), trimSeparators(rest[i+2:])
		switch {
		case degreeRe.MatchString(left) && !degreeRe.MatchString(right):
			entry.Degree, entry.School = left, right
		case schoolRe.MatchString(left) && !schoolRe.MatchString(right):
			entry.School, entry.Degree = left, right
		default:
			entry.Degree, entry.School = left, right
		}
		return entry
	}

	if schoolRe.MatchString(rest) && !degreeRe.MatchString(rest) {
		entry.School = rest
	} else {
		entry.Degree = rest
	}
	return entry
}

func groupEducation(lines []layout.Line) []resume.EducationEntry {
	var entries []resume.EducationEntry
	var cur *resume.EducationEntry

	flush := func() {
		if cur != nil {
			entries = append(entries, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		text := line.Text
		if isBullet(text) {
			if cur == nil {
				cur = &resume.EducationEntry{}
			}
			cur.Details = append(cur.Details, stripBullet(text))
			continue
		}
		if startsEducationEntry(text) || cur == nil {
			// A school line directly under a degree-only header
			// completes the entry instead of opening a new one.
			if cur != nil && cur.School == "" && schoolRe.MatchString(text) &&
				!degreeRe.MatchString(text) && FindDateRange(text) == "" {
				cur.School = trimSeparators(StripDates(text))
				continue
			}
			flush()
			e := parseEducationHeader(text)
			cur = &e
			continue
		}
		cur.Details = append(cur.Details, text)
	}
	flush()
	return entries
}

// groupProjects clusters project lines: each non-bullet line opens a
// project, bullets are its highlights.
func groupProjects(lines []layout.Line) []resume.Project {
	var projects []resume.Project
	var cur *resume.Project

	flush := func() {
		if cur != nil {
			projects = append(projects, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		text := line.Text
		if isBullet(text) {
			if cur == nil {
				cur = &resume.Project{}
			}
			cur.Highlights = append(cur.Highlights, stripBullet(text))
			continue
		}
		flush()
		p := resume.Project{Dates: FindDateRange(text)}
		if urls := FindURLs(text); len(urls) > 0 {
			p.URL = urls[0]
			text = strings.Replace(text, urls[0], "", 1)
		}
		p.Name = trimSeparators(StripDates(text))
		cur = &p
	}
	flush()
	return projects
}

// splitSkills breaks a skills line into individual entries, dropping
// a short "Languages:" style prefix when present.
func splitSkills(text string) []string {
	if i := strings.Index(text, ":"); i > 0 && i < 30 {
		text = text[i+1:]
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '•' || r == '·'
	})
	var skills []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
