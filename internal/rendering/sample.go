package rendering

import "github.com/jonathan/resume-builder/internal/resume"

// SampleDocument is the placeholder resume shown on the template gallery.
func SampleDocument() resume.Document {
	return resume.Document{
		PersonalInfo: resume.PersonalInfo{
			FirstName:       "ESTELLE",
			LastName:        "DARCY",
			Email:           "hello@reallygreatsite.com",
			Phone:           "+1 (555) 123-4567",
			Address:         "123 Anywhere St.",
			City:            "Any City",
			State:           "NY",
			ZipCode:         "10001",
			Summary:         "Experienced Process Engineer with expertise in automation systems, manufacturing processes, and preventive maintenance strategies. Proven track record of increasing operational efficiency and reducing costs.",
			RoleApplyingFor: "PROCESS ENGINEER",
			Website:         "www.reallygreatsite.com",
		},
		Experience: []resume.Experience{
			{
				ID:          "sample-1",
				Company:     "Company1",
				Position:    "Instrument Tech",
				Location:    "San Francisco, CA",
				StartDate:   "Jan 2024",
				EndDate:     "Present",
				Current:     true,
				Description: "Led development of an advanced automation system, achieving a 15% increase in operational efficiency. Streamlined manufacturing processes, reducing production costs by 10%. Implemented preventive maintenance strategies, resulting in a 20% decrease in equipment downtime.",
			},
			{
				ID:          "sample-2",
				Company:     "Company2",
				Position:    "Internship",
				Location:    "Austin, TX",
				StartDate:   "Jun 2022",
				EndDate:     "Aug 2022",
				Description: "Designed and optimised a robotic control system, realizing a 12% performance improvement. Coordinated testing and validation, ensuring compliance with industry standards. Provided technical expertise, contributing to a 15% reduction in system failures.",
			},
		},
		Education: []resume.Education{
			{
				ID:          "sample-3",
				Institution: "Engineering University",
				Degree:      "Bachelor of Design in Process Engineering",
				Field:       "Process Engineering",
				Location:    "Boston, MA",
				StartDate:   "Sep 2019",
				EndDate:     "Sep 2023",
				GPA:         "3.8",
				Description: "Relevant coursework in Process Design and Project Management.",
			},
		},
		Skills: []resume.Skill{
			{ID: "sample-4", Name: "Prototyping Tools", Level: resume.LevelExpert},
			{ID: "sample-5", Name: "User Research", Level: resume.LevelAdvanced},
			{ID: "sample-6", Name: "Interaction Design", Level: resume.LevelAdvanced},
			{ID: "sample-7", Name: "Visual Design", Level: resume.LevelIntermediate},
			{ID: "sample-8", Name: "Accessibility", Level: resume.LevelIntermediate},
			{ID: "sample-9", Name: "Responsive Design", Level: resume.LevelAdvanced},
		},
	}
}
