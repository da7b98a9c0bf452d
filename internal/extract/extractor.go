// Package extract turns sectioned resume lines into a structured
// record using line-level pattern rules. Extraction is best-effort:
// malformed or ambiguous input degrades to omitted fields, never to
// an error.
package extract

import (
	"strings"
	"unicode"

	"github.com/careerstack/resumegest/internal/layout"
	"github.com/careerstack/resumegest/internal/resume"
)

// Extract applies per-category heuristics to each section and builds
// the resume record. Sections matching no known category are preserved
// verbatim under Additional.
func Extract(sections []layout.Section) resume.Record {
	var rec resume.Record

	headingless := len(sections) == 1 && sections[0].Heading == ""

	for _, sec := range sections {
		switch Categorize(sec.Label()) {
		case CategoryProfile:
			extractProfile(sec.Body(), &rec, headingless)
		case CategorySummary:
			appendSummary(&rec, sec.Body())
		case CategoryExperience:
			rec.Experience = append(rec.Experience, groupExperience(sec.Body())...)
		case CategoryEducation:
			rec.Education = append(rec.Education, groupEducation(sec.Body())...)
		case CategorySkills:
			for _, line := range sec.Body() {
				rec.Skills = appendUnique(rec.Skills, splitSkills(line.Text)...)
			}
		case CategoryProjects:
			rec.Projects = append(rec.Projects, groupProjects(sec.Body())...)
		case CategoryCertifications:
			rec.Certifications = append(rec.Certifications, groupCertifications(sec.Body())...)
		default:
			if lines := lineTexts(sec.Body()); len(lines) > 0 {
				rec.Additional = append(rec.Additional, resume.AdditionalSection{
					Heading: sec.Label(),
					Lines:   lines,
				})
			}
		}
	}

	// Contact info usually sits in the first few lines regardless of
	// headings; fill anything the profile section pass missed.
	fillContactFallback(sections, &rec)

	return rec
}

// extractProfile pulls contact and identity fields from the leading
// unlabeled section (or an explicit contact section). When the whole
// document is a single headingless section, its lines are also
// preserved verbatim so no text disappears.
func extractProfile(lines []layout.Line, rec *resume.Record, preserve bool) {
	var leftover []string

	for _, line := range lines {
		text := line.Text
		consumed := false

		if rec.Profile.Email == "" {
			if email := FindEmail(text); email != "" {
				rec.Profile.Email = email
				consumed = true
			}
		}
		if rec.Profile.Phone == "" {
			if phone := FindPhone(text); phone != "" {
				rec.Profile.Phone = phone
				consumed = true
			}
		}
		if urls := FindURLs(text); len(urls) > 0 {
			rec.Profile.Links = appendUnique(rec.Profile.Links, urls...)
			consumed = true
		}
		if consumed {
			continue
		}

		if rec.Profile.Name == "" && looksLikeName(text) {
			rec.Profile.Name = text
			continue
		}
		if rec.Profile.Location == "" && looksLikeLocation(text) {
			rec.Profile.Location = text
			continue
		}
		leftover = append(leftover, text)
	}

	if len(leftover) == 0 {
		return
	}
	if preserve {
		rec.Additional = append(rec.Additional, resume.AdditionalSection{
			Heading: "unknown",
			Lines:   leftover,
		})
		return
	}
	// Prose under the contact block is an untitled summary.
	for _, l := range leftover {
		if len(strings.Fields(l)) >= 5 {
			appendSummaryText(rec, l)
		}
	}
}

func appendSummary(rec *resume.Record, lines []layout.Line) {
	for _, line := range lines {
		appendSummaryText(rec, line.Text)
	}
}

func appendSummaryText(rec *resume.Record, text string) {
	if rec.Profile.Summary == "" {
		rec.Profile.Summary = text
		return
	}
	rec.Profile.Summary += " " + text
}

// groupCertifications parses one certification per line, with an
// optional year.
func groupCertifications(lines []layout.Line) []resume.Certification {
	var certs []resume.Certification
	for _, line := range lines {
		text := stripBullet(line.Text)
		year := FindYear(text)
		name := trimSeparators(strings.Replace(text, year, "", 1))
		if name == "" && year == "" {
			continue
		}
		if name == "" {
			name = text
			year = ""
		}
		certs = append(certs, resume.Certification{Name: name, Year: year})
	}
	return certs
}

// fillContactFallback scans the first lines of the whole document for
// contact fields the section pass did not find. Best-effort only.
func fillContactFallback(sections []layout.Section, rec *resume.Record) {
	if rec.Profile.Email != "" && rec.Profile.Phone != "" && rec.Profile.Name != "" {
		return
	}
	scanned := 0
	for _, sec := range sections {
		for _, line := range sec.Lines {
			if scanned >= 10 {
				return
			}
			scanned++
			text := line.Text
			if rec.Profile.Email == "" {
				if email := FindEmail(text); email != "" {
					rec.Profile.Email = email
				}
			}
			if rec.Profile.Phone == "" {
				if phone := FindPhone(text); phone != "" {
					rec.Profile.Phone = phone
				}
			}
			if rec.Profile.Name == "" && looksLikeName(text) {
				rec.Profile.Name = text
			}
		}
	}
}

// looksLikeName matches a short line of capitalized words with no
// digits or punctuation, the usual shape of a name at the top of a
// resume.
func looksLikeName(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) {
			return false
		}
		for _, c := range w {
			if unicode.IsDigit(c) || strings.ContainsRune(",;:@/", c) {
				return false
			}
		}
	}
	return true
}

// looksLikeLocation matches a "City, Region" shaped line with no
// digits.
func looksLikeLocation(text string) bool {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return false
	}
	if len(strings.Fields(text)) > 5 {
		return false
	}
	for _, r := range text {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != ""
}

func lineTexts(lines []layout.Line) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		seen := false
		for _, existing := range dst {
			if strings.EqualFold(existing, item) {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, item)
		}
	}
	return dst
}
