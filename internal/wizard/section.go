package wizard

import "fmt"

// Section identifies a wizard step. Values match the `section` query parameter.
type Section string

// Wizard steps in display order.
const (
	SectionPersonalInfo Section = "personal-info"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionSkills       Section = "skills"
	SectionPreview      Section = "preview"
)

// Sections lists every step in order.
var Sections = []Section{SectionPersonalInfo, SectionExperience, SectionEducation, SectionSkills, SectionPreview}

var sectionTitles = map[Section]string{
	SectionPersonalInfo: "Personal Info",
	SectionExperience:   "Experience",
	SectionEducation:    "Education",
	SectionSkills:       "Skills",
	SectionPreview:      "Preview",
}

// ErrUnknownSection is returned for a section name outside Sections.
type ErrUnknownSection struct {
	Value string
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Value)
}

// ParseSection maps a query value to a Section. Empty selects the first step.
func ParseSection(v string) (Section, error) {
	if v == "" {
		return SectionPersonalInfo, nil
	}
	for _, s := range Sections {
		if string(s) == v {
			return s, nil
		}
	}
	return "", &ErrUnknownSection{Value: v}
}

// Title returns the display name of s.
func (s Section) Title() string {
	return sectionTitles[s]
}

// Next returns the following step, or s itself for the last step.
func (s Section) Next() Section {
	for i, sec := range Sections {
		if sec == s && i+1 < len(Sections) {
			return Sections[i+1]
		}
	}
	return s
}

// Previous returns the preceding step, or s itself for the first step.
func (s Section) Previous() Section {
	for i, sec := range Sections {
		if sec == s && i > 0 {
			return Sections[i-1]
		}
	}
	return s
}
