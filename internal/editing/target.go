// Package editing implements in-place editing of a rendered resume: one
// active target at a time, a draft value, and commit or cancel.
package editing

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Kind names the field an edit target points at.
type Kind int

// Target kinds. Kinds from KindSkill on address a record and need an ID,
// except KindNewSkill.
const (
	KindNone Kind = iota
	KindName
	KindRole
	KindSummary
	KindContact
	KindAddress
	KindEmail
	KindWebsite
	KindSkill
	KindNewSkill
	KindExperienceTitle
	KindExperienceCompany
	KindExperienceDates
	KindExperienceDescription
	KindEducationDegree
	KindEducationInstitution
	KindEducationDates
	KindEducationDescription
)

var kindNames = map[Kind]string{
	KindNone:                  "none",
	KindName:                  "name",
	KindRole:                  "role",
	KindSummary:               "summary",
	KindContact:               "contact",
	KindAddress:               "address",
	KindEmail:                 "email",
	KindWebsite:               "website",
	KindSkill:                 "skill",
	KindNewSkill:              "new-skill",
	KindExperienceTitle:       "experience-title",
	KindExperienceCompany:     "experience-company",
	KindExperienceDates:       "experience-dates",
	KindExperienceDescription: "experience-description",
	KindEducationDegree:       "education-degree",
	KindEducationInstitution:  "education-institution",
	KindEducationDates:        "education-dates",
	KindEducationDescription:  "education-description",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown edit target kind: %q", s)
}

func (k Kind) experience() bool {
	return k >= KindExperienceTitle && k <= KindExperienceDescription
}

func (k Kind) education() bool {
	return k >= KindEducationDegree && k <= KindEducationDescription
}

// needsID reports whether targets of this kind address a record.
func (k Kind) needsID() bool {
	return k == KindSkill || k.experience() || k.education()
}

// Multiline reports whether the field is edited in a textarea.
func (k Kind) Multiline() bool {
	return k == KindSummary || k == KindExperienceDescription || k == KindEducationDescription
}

// Target is the single field currently being edited. The zero value means
// nothing is being edited.
type Target struct {
	Kind Kind
	ID   string
}

// Field returns a target for a document-level field.
func Field(k Kind) Target { return Target{Kind: k} }

// Record returns a target for a field of the record with the given id.
func Record(k Kind, id string) Target { return Target{Kind: k, ID: id} }

// IsZero reports whether t is the idle target.
func (t Target) IsZero() bool { return t.Kind == KindNone }

// String encodes t as "kind" or "kind:id".
func (t Target) String() string {
	if t.ID == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + ":" + t.ID
}

// ParseTarget decodes the String form.
func ParseTarget(s string) (Target, error) {
	name, id, _ := strings.Cut(s, ":")
	k, err := ParseKind(name)
	if err != nil {
		return Target{}, err
	}
	t := Target{Kind: k, ID: id}
	if err := t.validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

func (t Target) validate() error {
	if t.Kind.needsID() && t.ID == "" {
		return fmt.Errorf("edit target %s requires a record id", t.Kind)
	}
	if !t.Kind.needsID() && t.ID != "" {
		return fmt.Errorf("edit target %s does not take a record id", t.Kind)
	}
	return nil
}

// MarshalText encodes t for JSON.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes t from JSON.
func (t *Target) UnmarshalText(b []byte) error {
	parsed, err := ParseTarget(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Seed returns the draft value a target opens with, read from doc. It
// returns false when the addressed record does not exist.
func (t Target) Seed(doc resume.Document) (string, bool) {
	p := doc.PersonalInfo
	switch t.Kind {
	case KindName:
		return strings.TrimSpace(p.FirstName + " " + p.LastName), true
	case KindRole:
		return p.RoleApplyingFor, true
	case KindSummary:
		return p.Summary, true
	case KindContact:
		return FormatContact(p), true
	case KindAddress:
		return p.City, true
	case KindEmail:
		return p.Email, true
	case KindWebsite:
		return p.Website, true
	case KindNewSkill:
		return "", true
	case KindSkill:
		for _, sk := range doc.Skills {
			if sk.ID == t.ID {
				return sk.Name, true
			}
		}
	}

	if t.Kind.experience() {
		for _, e := range doc.Experience {
			if e.ID != t.ID {
				continue
			}
			switch t.Kind {
			case KindExperienceTitle:
				return e.Position, true
			case KindExperienceCompany:
				return e.Company, true
			case KindExperienceDates:
				return FormatDates(e.StartDate, e.EndDate, e.Current), true
			default:
				return e.Description, true
			}
		}
	}

	if t.Kind.education() {
		for _, e := range doc.Education {
			if e.ID != t.ID {
				continue
			}
			switch t.Kind {
			case KindEducationDegree:
				return e.Degree, true
			case KindEducationInstitution:
				return e.Institution, true
			case KindEducationDates:
				return FormatDates(e.StartDate, e.EndDate, e.Current), true
			default:
				return e.Description, true
			}
		}
	}

	return "", false
}

// apply writes value to the field t addresses.
func (t Target) apply(store *resume.Store, value string) {
	switch t.Kind {
	case KindName:
		first, last := SplitName(value)
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{FirstName: &first, LastName: &last})
	case KindRole:
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{RoleApplyingFor: &value})
	case KindSummary:
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{Summary: &value})
	case KindContact:
		store.UpdatePersonalInfo(ParseContact(value))
	case KindAddress:
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{City: &value})
	case KindEmail:
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{Email: &value})
	case KindWebsite:
		store.UpdatePersonalInfo(resume.PersonalInfoPatch{Website: &value})
	case KindSkill:
		name := strings.TrimSpace(value)
		if name == "" {
			store.DeleteSkill(t.ID)
			return
		}
		store.UpdateSkill(t.ID, resume.SkillPatch{Name: &name})
	case KindNewSkill:
		if name := strings.TrimSpace(value); name != "" {
			store.AddSkill(resume.Skill{Name: name, Level: resume.LevelAdvanced})
		}
	case KindExperienceTitle:
		store.UpdateExperience(t.ID, resume.ExperiencePatch{Position: &value})
	case KindExperienceCompany:
		store.UpdateExperience(t.ID, resume.ExperiencePatch{Company: &value})
	case KindExperienceDates:
		start, end, current := ParseDates(value)
		store.UpdateExperience(t.ID, resume.ExperiencePatch{StartDate: &start, EndDate: &end, Current: &current})
	case KindExperienceDescription:
		store.UpdateExperience(t.ID, resume.ExperiencePatch{Description: &value})
	case KindEducationDegree:
		store.UpdateEducation(t.ID, resume.EducationPatch{Degree: &value})
	case KindEducationInstitution:
		store.UpdateEducation(t.ID, resume.EducationPatch{Institution: &value})
	case KindEducationDates:
		start, end, current := ParseDates(value)
		store.UpdateEducation(t.ID, resume.EducationPatch{StartDate: &start, EndDate: &end, Current: &current})
	case KindEducationDescription:
		store.UpdateEducation(t.ID, resume.EducationPatch{Description: &value})
	}
}
