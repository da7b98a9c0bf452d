// Package resume defines the structured output of the extraction
// pipeline. Every field is optional: extraction degrades to omission,
// it never fails.
package resume

// Record is the structured result of parsing one resume document.
type Record struct {
	Profile        Profile             `json:"profile"`
	Experience     []ExperienceEntry   `json:"experience,omitempty"`
	Education      []EducationEntry    `json:"education,omitempty"`
	Skills         []string            `json:"skills,omitempty"`
	Projects       []Project           `json:"projects,omitempty"`
	Certifications []Certification     `json:"certifications,omitempty"`
	Additional     []AdditionalSection `json:"additional_sections,omitempty"`
}

// Profile holds contact and identity fields, usually found near the
// top of the document before any heading.
type Profile struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

// ExperienceEntry is one job within an experience section.
type ExperienceEntry struct {
	Title        string   `json:"title,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// EducationEntry is one degree or program within an education section.
type EducationEntry struct {
	Degree  string   `json:"degree,omitempty"`
	School  string   `json:"school,omitempty"`
	Dates   string   `json:"dates,omitempty"`
	Details []string `json:"details,omitempty"`
}

// Project is one entry within a projects section.
type Project struct {
	Name       string   `json:"name,omitempty"`
	URL        string   `json:"url,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// Certification is one entry within a certifications section.
type Certification struct {
	Name string `json:"name"`
	Year string `json:"year,omitempty"`
}

// AdditionalSection preserves a section the extractor could not map to
// any known category. Nothing recognized text-wise disappears.
type AdditionalSection struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// IsEmpty reports whether the record carries no extracted content.
func (r Record) IsEmpty() bool {
	p := r.Profile
	profileEmpty := p.Name == "" && p.Email == "" && p.Phone == "" &&
		p.Location == "" && len(p.Links) == 0 && p.Summary == ""
	return profileEmpty &&
		len(r.Experience) == 0 && len(r.Education) == 0 &&
		len(r.Skills) == 0 && len(r.Projects) == 0 &&
		len(r.Certifications) == 0 && len(r.Additional) == 0
}
