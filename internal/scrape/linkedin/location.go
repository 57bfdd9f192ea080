package linkedin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkscout-engine/internal/domain"
	"linkscout-engine/internal/scrape/util"
)

// parseLocation splits a card's metadata location text on ", ". Two parts
// are city/state with the crawl's default country; three parts carry their
// own country; anything else degrades to the default country alone. Total:
// never fails, only loses precision.
func parseLocation(metadata *goquery.Selection, def domain.Country) domain.Location {
	if def.Name == "" {
		def = domain.CountryWorldwide
	}
	loc := domain.Location{Country: def}
	if metadata == nil || metadata.Length() == 0 {
		return loc
	}

	text := util.CleanText(metadata.Find("span.job-search-card__location").First().Text())
	parts := strings.Split(text, ", ")
	switch len(parts) {
	case 2:
		loc.City, loc.State = parts[0], parts[1]
	case 3:
		loc.City, loc.State = parts[0], parts[1]
		loc.Country = domain.CountryFromString(parts[2])
	}
	return loc
}
