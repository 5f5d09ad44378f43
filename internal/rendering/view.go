package rendering

import (
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/resume"
)

// Field is one clickable piece of text in the template.
type Field struct {
	Target      string // encoded edit target; empty when not editable
	Slot        string // placeholder kind for empty sections
	Text        string
	Placeholder string
	Editing     bool
	Draft       string
	Multiline   bool
}

// ExperienceView is one experience entry as the template sees it.
type ExperienceView struct {
	Title, Company, Dates, Description Field
}

// EducationView is one education entry as the template sees it.
type EducationView struct {
	Degree, Dates, Institution, Description Field
}

// PageView is the template input.
type PageView struct {
	Title      string
	TemplateID string
	Mode       string
	Editable   bool

	Name, Role, Summary  Field
	Contact              Field
	City, Email, Website Field

	ProfessionalSkills []Field
	TechnicalSkills    []Field
	NewSkill           Field

	Experience []ExperienceView
	Education  []EducationView
}

// PageTitle returns "<name> - Resume", or "Resume" without a name.
func PageTitle(info resume.PersonalInfo) string {
	name := info.FullName()
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}

type viewBuilder struct {
	editable bool
	state    editing.State
}

func (b viewBuilder) field(t editing.Target, text, placeholder string) Field {
	f := Field{Text: text, Placeholder: placeholder, Multiline: t.Kind.Multiline()}
	if !b.editable {
		return f
	}
	f.Target = t.String()
	if b.state.Editing(t) {
		f.Editing = true
		f.Draft = b.state.Draft
	}
	return f
}

func (b viewBuilder) slot(k editing.Kind, placeholder string) Field {
	return Field{Slot: k.String(), Placeholder: placeholder}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

func buildView(templateID string, mode Mode, doc resume.Document, state editing.State) PageView {
	b := viewBuilder{editable: mode.Editable(), state: state}
	p := doc.PersonalInfo

	v := PageView{
		Title:      PageTitle(p),
		TemplateID: templateID,
		Mode:       mode.Name(),
		Editable:   b.editable,
		Name:       b.field(editing.Field(editing.KindName), p.FullName(), "Your name"),
		Role:       b.field(editing.Field(editing.KindRole), p.RoleApplyingFor, "Position"),
		Summary:    b.field(editing.Field(editing.KindSummary), p.Summary, "Briefly explain why you are a great fit for the role..."),
		Contact:    b.field(editing.Field(editing.KindContact), "", "Address, City | Email | Website"),
		City:       b.field(editing.Field(editing.KindAddress), joinNonEmpty(", ", p.Address, p.City), "City"),
		Email:      b.field(editing.Field(editing.KindEmail), p.Email, "Email"),
		Website:    b.field(editing.Field(editing.KindWebsite), p.Website, "Website"),
		NewSkill:   b.field(editing.Field(editing.KindNewSkill), "", "Enter skill name"),
	}

	half := (len(doc.Skills) + 1) / 2
	for i, sk := range doc.Skills {
		f := b.field(editing.Record(editing.KindSkill, sk.ID), sk.Name, "Enter skill name")
		if i < half {
			v.ProfessionalSkills = append(v.ProfessionalSkills, f)
		} else {
			v.TechnicalSkills = append(v.TechnicalSkills, f)
		}
	}

	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, ExperienceView{
			Title:       b.field(editing.Record(editing.KindExperienceTitle, e.ID), e.Position, "Position Title"),
			Company:     b.field(editing.Record(editing.KindExperienceCompany, e.ID), e.Company, "Company Name"),
			Dates:       b.field(editing.Record(editing.KindExperienceDates, e.ID), editing.FormatDates(e.StartDate, e.EndDate, e.Current), "Start Date - End Date"),
			Description: b.field(editing.Record(editing.KindExperienceDescription, e.ID), e.Description, "Job description and responsibilities..."),
		})
	}
	if len(doc.Experience) == 0 && b.editable {
		v.Experience = []ExperienceView{{
			Title:       b.slot(editing.KindExperienceTitle, "Position Title"),
			Company:     b.slot(editing.KindExperienceCompany, "Company Name"),
			Dates:       b.slot(editing.KindExperienceDates, "Start Date - End Date"),
			Description: b.slot(editing.KindExperienceDescription, "Job description and responsibilities..."),
		}}
	}

	for _, e := range doc.Education {
		v.Education = append(v.Education, EducationView{
			Degree:      b.field(editing.Record(editing.KindEducationDegree, e.ID), e.Degree, "Degree and Field of Study"),
			Dates:       b.field(editing.Record(editing.KindEducationDates, e.ID), editing.FormatDates(e.StartDate, e.EndDate, e.Current), "Start Date - End Date"),
			Institution: b.field(editing.Record(editing.KindEducationInstitution, e.ID), e.Institution, "College and University Name"),
			Description: b.field(editing.Record(editing.KindEducationDescription, e.ID), e.Description, "Education description..."),
		})
	}
	if len(doc.Education) == 0 && b.editable {
		v.Education = []EducationView{{
			Degree:      b.slot(editing.KindEducationDegree, "Degree and Field of Study"),
			Dates:       b.slot(editing.KindEducationDates, "Start Date - End Date"),
			Institution: b.slot(editing.KindEducationInstitution, "College and University Name"),
			Description: b.slot(editing.KindEducationDescription, "Education description..."),
		}}
	}

	return v
}
