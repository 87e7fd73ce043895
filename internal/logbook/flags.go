package logbook

import "regexp"

// Keyword families scanned in the remarks. Empirical; extend as new
// phrasings show up in scanned pages.
var (
	crossCountryRe = regexp.MustCompile(`(?i)cross[\s-]?country|\bxc\b`)
	nightRe        = regexp.MustCompile(`(?i)\bnight\b|\bnvg\b`)
	soloRe         = regexp.MustCompile(`(?i)\bsolo\b`)
)

// Flags are the boolean attributes inferred from the remarks text.
type Flags struct {
	CrossCountry bool
	Night        bool
	Solo         bool
}

// DeriveFlags scans remarks for each keyword family independently.
func DeriveFlags(remarks string) Flags {
	return Flags{
		CrossCountry: crossCountryRe.MatchString(remarks),
		Night:        nightRe.MatchString(remarks),
		Solo:         soloRe.MatchString(remarks),
	}
}
