package resume

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var monthYearPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// Year bounds accepted for experience dates.
const (
	MinYear = 1900
	MaxYear = 2100
)

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// IsValidDate reports whether s is empty or an MM/YYYY date.
func IsValidDate(s string) bool {
	return s == "" || monthYearPattern.MatchString(s)
}

// IsValidExperienceDate is IsValidDate with the year restricted to MinYear..MaxYear.
func IsValidExperienceDate(s string) bool {
	if s == "" {
		return true
	}
	if !monthYearPattern.MatchString(s) {
		return false
	}
	year, err := strconv.Atoi(s[3:])
	if err != nil {
		return false
	}
	return year >= MinYear && year <= MaxYear
}

// FormatDateInput normalizes keyboard input toward MM/YYYY: it strips
// anything but digits and '/', inserts the slash after two digits and caps
// the result at seven characters.
func FormatDateInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '/' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) == 2 && !strings.Contains(out, "/") {
		out += "/"
	}
	if len(out) > 7 {
		out = out[:7]
	}
	return out
}

const dateFormatMessage = "Please enter date in MM/YYYY format"

// personalInfoRequired lists the required PersonalInfo fields in form order.
var personalInfoRequired = []struct {
	key, label string
	get        func(PersonalInfo) string
}{
	{"firstName", "First Name", func(p PersonalInfo) string { return p.FirstName }},
	{"lastName", "Last Name", func(p PersonalInfo) string { return p.LastName }},
	{"roleApplyingFor", "Role Applying For", func(p PersonalInfo) string { return p.RoleApplyingFor }},
	{"email", "Email", func(p PersonalInfo) string { return p.Email }},
	{"city", "City", func(p PersonalInfo) string { return p.City }},
	{"summary", "About Me", func(p PersonalInfo) string { return p.Summary }},
}

// ValidatePersonalInfo reports every missing required field.
func ValidatePersonalInfo(p PersonalInfo) error {
	errs := FieldErrors{}
	for _, f := range personalInfoRequired {
		if !notBlank(f.get(p)) {
			errs[f.key] = f.label + " is required"
		}
	}
	return errs.orNil()
}

// ValidateExperience checks the fields the experience form requires.
func ValidateExperience(e Experience) error {
	errs := FieldErrors{}
	if !notBlank(e.Company) || !notBlank(e.Position) {
		errs["company"] = "Please fill in Company Name and Position"
	}
	if !IsValidExperienceDate(e.StartDate) {
		errs["startDate"] = dateFormatMessage
	}
	if !IsValidExperienceDate(e.EndDate) {
		errs["endDate"] = dateFormatMessage
	}
	return errs.orNil()
}

// ValidateEducation checks the fields the education form requires.
func ValidateEducation(e Education) error {
	errs := FieldErrors{}
	if !notBlank(e.Institution) || !notBlank(e.Degree) {
		errs["institution"] = "Please fill in Institution Name and Degree"
	}
	if !IsValidDate(e.StartDate) {
		errs["startDate"] = dateFormatMessage
	}
	if !IsValidDate(e.EndDate) {
		errs["endDate"] = dateFormatMessage
	}
	return errs.orNil()
}

// ValidateSkill requires a name and a known level.
func ValidateSkill(sk Skill) error {
	errs := FieldErrors{}
	if !notBlank(sk.Name) || sk.Level == "" {
		errs["name"] = "Please fill in both Skill and Proficiency"
	} else if !IsValidLevel(sk.Level) {
		errs["level"] = fmt.Sprintf("unknown proficiency %q", sk.Level)
	}
	return errs.orNil()
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
