package resume

// PersonalInfoPatch is a merge patch for PersonalInfo. Nil fields are left untouched.
type PersonalInfoPatch struct {
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	City            *string `json:"city,omitempty"`
	State           *string `json:"state,omitempty"`
	ZipCode         *string `json:"zipCode,omitempty"`
	Summary         *string `json:"summary,omitempty"`
	RoleApplyingFor *string `json:"roleApplyingFor,omitempty"`
	Website         *string `json:"website,omitempty"`
}

// ExperiencePatch is a merge patch for an Experience record.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationPatch is a merge patch for an Education record.
type EducationPatch struct {
	Institution *string `json:"institution,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Field       *string `json:"field,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SkillPatch is a merge patch for a Skill record.
type SkillPatch struct {
	Name  *string `json:"name,omitempty"`
	Level *string `json:"level,omitempty"`
}

// String returns a pointer to v, for building patches inline.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// FullPatch returns a patch that overwrites every PersonalInfo field with p's values.
func FullPatch(p PersonalInfo) PersonalInfoPatch {
	return PersonalInfoPatch{
		FirstName:       String(p.FirstName),
		LastName:        String(p.LastName),
		Email:           String(p.Email),
		Phone:           String(p.Phone),
		Address:         String(p.Address),
		City:            String(p.City),
		State:           String(p.State),
		ZipCode:         String(p.ZipCode),
		Summary:         String(p.Summary),
		RoleApplyingFor: String(p.RoleApplyingFor),
		Website:         String(p.Website),
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (p PersonalInfoPatch) apply(dst *PersonalInfo) {
	set(&dst.FirstName, p.FirstName)
	set(&dst.LastName, p.LastName)
	set(&dst.Email, p.Email)
	set(&dst.Phone, p.Phone)
	set(&dst.Address, p.Address)
	set(&dst.City, p.City)
	set(&dst.State, p.State)
	set(&dst.ZipCode, p.ZipCode)
	set(&dst.Summary, p.Summary)
	set(&dst.RoleApplyingFor, p.RoleApplyingFor)
	set(&dst.Website, p.Website)
}

func (p ExperiencePatch) apply(dst *Experience) {
	set(&dst.Company, p.Company)
	set(&dst.Position, p.Position)
	set(&dst.Location, p.Location)
	set(&dst.StartDate, p.StartDate)
	set(&dst.EndDate, p.EndDate)
	set(&dst.Current, p.Current)
	set(&dst.Description, p.Description)
}

func (p EducationPatch) apply(dst *Education) {
	set(&dst.Institution, p.Institution)
	set(&dst.Degree, p.Degree)
	set(&dst.Field, p.Field)
	set(&dst.Location, p.Location)
	set(&dst.StartDate, p.StartDate)
	set(&dst.EndDate, p.EndDate)
	set(&dst.Current, p.Current)
	set(&dst.GPA, p.GPA)
	set(&dst.Description, p.Description)
}

func (p SkillPatch) apply(dst *Skill) {
	set(&dst.Name, p.Name)
	set(&dst.Level, p.Level)
}
