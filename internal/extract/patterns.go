package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Line-level field patterns. Each rule is a small function over one
// line of text so individual heuristics can be tuned in isolation.

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	urlRe = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s,;|]+|(?:linkedin\.com|github\.com|gitlab\.com|bitbucket\.org)/[^\s,;|]+`)

	// A phone candidate is a run of digits and common separators; the
	// digit count is checked separately to avoid matching dates or IDs.
	phoneCandidateRe = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)

	datePart    = `(?:(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s*\d{4}|\d{1,2}/\d{4}|\d{4})`
	dateRangeRe = regexp.MustCompile(datePart + `\s*(?:-|–|—|(?i:to)|(?i:until))\s*(?:` + datePart + `|(?i:present|current|now))`)
	monthYearRe = regexp.MustCompile(`(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s*\d{4}`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// FindEmail returns the first email address in the text, or "".
func FindEmail(text string) string {
	return emailRe.FindString(text)
}

// FindURLs returns all URL-shaped substrings in the text, excluding
// anything that is part of an email address.
func FindURLs(text string) []string {
	withoutEmails := emailRe.ReplaceAllString(text, " ")
	var urls []string
	for _, u := range urlRe.FindAllString(withoutEmails, -1) {
		urls = append(urls, strings.TrimRight(u, ".,;)"))
	}
	return urls
}

// FindPhone returns the first phone-number-shaped substring with 7 to
// 15 digits, or "". Date ranges are masked out first so "2020-2022"
// is never mistaken for a number.
func FindPhone(text string) string {
	masked := dateRangeRe.ReplaceAllString(text, " ")
	masked = monthYearRe.ReplaceAllString(masked, " ")
	for _, cand := range phoneCandidateRe.FindAllString(masked, -1) {
		if n := digitCount(cand); n >= 7 && n <= 15 {
			return strings.TrimSpace(cand)
		}
	}
	return ""
}

// FindDateRange returns the first date range in the text ("2020-2022",
// "Jan 2020 - Present", "03/2019 to 11/2021"), or "".
func FindDateRange(text string) string {
	return dateRangeRe.FindString(text)
}

// FindYear returns the first four-digit year in the text, or "".
func FindYear(text string) string {
	return yearRe.FindString(text)
}

// StripDates removes date ranges and stray month/year stamps from the
// text, cleaning up the separators they leave behind.
func StripDates(text string) string {
	out := dateRangeRe.ReplaceAllString(text, " ")
	out = monthYearRe.ReplaceAllString(out, " ")
	return trimSeparators(out)
}

// trimSeparators collapses whitespace and strips leftover punctuation
// from the ends of a string after a pattern was cut out of it.
func trimSeparators(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " \t,;|-–—·(•)")
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
