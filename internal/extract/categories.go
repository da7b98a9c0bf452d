package extract

import "strings"

// Category is the semantic kind of a resume section.
type Category string

const (
	CategoryProfile        Category = "profile"
	CategorySummary        Category = "summary"
	CategoryExperience     Category = "experience"
	CategoryEducation      Category = "education"
	CategorySkills         Category = "skills"
	CategoryProjects       Category = "projects"
	CategoryCertifications Category = "certifications"
	CategoryOther          Category = "other"
)

// categoryKeywords maps categories to heading keywords. The slice
// order is the tie-break priority: when a heading matches several
// categories, the first match wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryProfile, []string{"profile", "contact", "personal info", "personal details", "about me"}},
	{CategorySummary, []string{"summary", "objective", "about"}},
	{CategoryExperience, []string{"experience", "employment", "work history", "career"}},
	{CategoryEducation, []string{"education", "academic"}},
	{CategorySkills, []string{"skill", "technologies", "competencies", "tools", "languages"}},
	{CategoryProjects, []string{"project", "portfolio"}},
	{CategoryCertifications, []string{"certification", "certificate", "license", "credential"}},
}

// Categorize maps a section label to its category by case-insensitive
// keyword match. The empty label (the region before the first heading)
// is the profile. Unmatched labels are CategoryOther.
func Categorize(label string) Category {
	if strings.TrimSpace(label) == "" || strings.EqualFold(label, "unknown") {
		return CategoryProfile
	}
	lower := strings.ToLower(label)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
