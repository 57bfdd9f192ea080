package domain

import "strings"

// Country is a closed enumeration of countries the location parser can
// resolve. Unrecognized names degrade to a raw-text value rather than an
// error, so the type doubles as a fallback carrier.
type Country struct {
	Name string
	Code string // ISO 3166-1 alpha-2, empty for the worldwide sentinel and raw fallbacks
}

// CountryWorldwide is the default when a crawl doesn't pin a country and the
// card's location text doesn't name one.
var CountryWorldwide = Country{Name: "worldwide"}

var countryTable = []Country{
	{"argentina", "AR"},
	{"australia", "AU"},
	{"austria", "AT"},
	{"belgium", "BE"},
	{"brazil", "BR"},
	{"canada", "CA"},
	{"chile", "CL"},
	{"china", "CN"},
	{"colombia", "CO"},
	{"czech republic", "CZ"},
	{"denmark", "DK"},
	{"finland", "FI"},
	{"france", "FR"},
	{"germany", "DE"},
	{"greece", "GR"},
	{"hong kong", "HK"},
	{"hungary", "HU"},
	{"india", "IN"},
	{"indonesia", "ID"},
	{"ireland", "IE"},
	{"israel", "IL"},
	{"italy", "IT"},
	{"japan", "JP"},
	{"malaysia", "MY"},
	{"mexico", "MX"},
	{"netherlands", "NL"},
	{"new zealand", "NZ"},
	{"norway", "NO"},
	{"philippines", "PH"},
	{"poland", "PL"},
	{"portugal", "PT"},
	{"romania", "RO"},
	{"singapore", "SG"},
	{"south africa", "ZA"},
	{"south korea", "KR"},
	{"spain", "ES"},
	{"sweden", "SE"},
	{"switzerland", "CH"},
	{"taiwan", "TW"},
	{"thailand", "TH"},
	{"turkey", "TR"},
	{"ukraine", "UA"},
	{"united arab emirates", "AE"},
	{"united kingdom", "UK"},
	{"uk", "UK"},
	{"united states", "US"},
	{"usa", "US"},
	{"us", "US"},
	{"vietnam", "VN"},
}

// CountryFromString resolves a country name against the table. Unknown names
// come back as a raw-text Country so callers never lose information.
func CountryFromString(name string) Country {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "worldwide" {
		return CountryWorldwide
	}
	for _, c := range countryTable {
		if c.Name == key {
			return c
		}
	}
	return Country{Name: strings.TrimSpace(name)}
}

func (c Country) String() string {
	if c.Code != "" {
		return c.Code
	}
	return c.Name
}
