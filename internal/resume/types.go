// Package resume holds the resume document model and the store that owns it.
package resume

// PersonalInfo holds the candidate's contact and headline fields.
// Absent fields are empty strings, never missing.
type PersonalInfo struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	Summary         string `json:"summary"`
	RoleApplyingFor string `json:"roleApplyingFor"`
	Website         string `json:"website"`
}

// Experience is a single work history entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

// Skill is a named skill with a proficiency level.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Skill proficiency levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// Levels lists the accepted proficiency levels in ascending order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// IsValidLevel reports whether level is one of Levels.
func IsValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Document is the whole resume. Its JSON form is the persisted layout.
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	IsFresher    bool         `json:"isFresher"`
}

// Empty returns a document with no data and non-nil lists.
func Empty() Document {
	return Document{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []Skill{},
	}
}

// HasUserData reports whether the document carries anything the user typed:
// a name, email or summary, or at least one record in any list.
func (d Document) HasUserData() bool {
	p := d.PersonalInfo
	return notBlank(p.FirstName) || notBlank(p.LastName) || notBlank(p.Email) || notBlank(p.Summary) ||
		len(d.Experience) > 0 || len(d.Education) > 0 || len(d.Skills) > 0
}

// FullName joins first and last name with a single space, trimmed.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// clone returns a deep copy so callers can never alias store-owned slices.
func (d Document) clone() Document {
	out := d
	out.Experience = append([]Experience{}, d.Experience...)
	out.Education = append([]Education{}, d.Education...)
	out.Skills = append([]Skill{}, d.Skills...)
	return out
}

// normalize replaces nil lists with empty ones.
func (d *Document) normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
}
