package editing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Present marks an ongoing date range.
const Present = "Present"

const (
	dateSeparator    = " - "
	contactSeparator = " | "
	addressSeparator = ", "
)

// FormatDates renders "start - end", with Present for current entries.
// It returns "" when there is nothing to show.
func FormatDates(start, end string, current bool) string {
	if start == "" && end == "" && !current {
		return ""
	}
	if current {
		end = Present
	}
	return start + dateSeparator + end
}

// ParseDates splits "start - end". An end of Present marks the entry current
// and leaves the end date empty.
func ParseDates(s string) (start, end string, current bool) {
	parts := strings.Split(s, dateSeparator)
	start = parts[0]
	if len(parts) > 1 {
		end = parts[1]
	}
	if end == Present {
		return start, "", true
	}
	return start, end, false
}

// SplitName splits on the first space: the first word is the first name,
// the remainder the last name.
func SplitName(s string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(s), " ")
	return first, strings.TrimSpace(last)
}

// FormatContact renders "address, city | email | website".
func FormatContact(p resume.PersonalInfo) string {
	return p.Address + addressSeparator + p.City + contactSeparator + p.Email + contactSeparator + p.Website
}

// ParseContact parses the FormatContact layout into a patch over the four fields.
// Missing segments become empty strings.
func ParseContact(s string) resume.PersonalInfoPatch {
	parts := strings.Split(s, contactSeparator)
	at := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	addr := strings.Split(at(0), addressSeparator)
	address := addr[0]
	city := ""
	if len(addr) > 1 {
		city = addr[1]
	}
	email, website := at(1), at(2)
	return resume.PersonalInfoPatch{
		Address: &address,
		City:    &city,
		Email:   &email,
		Website: &website,
	}
}
