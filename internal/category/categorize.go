// Package category infers a maintenance category from free-text titles such
// as "Replace furnace filter" or "Reseal deck".
package category

import "strings"

const (
	Structural = "structural"
	Mechanical = "mechanical"
	Aesthetic  = "aesthetic"
	Efficiency = "efficiency"
	Safety     = "safety"
	General    = "general"
)

// Categorize returns the category for the given title.
// It performs case-insensitive matching: exact match first, then substring match.
// Falls back to General if no match is found.
func Categorize(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	if name == "" {
		return General
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Ordered more-specific first: "smoke detector" must win over "detector"
	// and "water heater" over "heater".
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return General
}

var exactMatch = map[string]string{
	"roof":        Structural,
	"foundation":  Structural,
	"gutters":     Structural,
	"hvac":        Mechanical,
	"furnace":     Mechanical,
	"plumbing":    Mechanical,
	"electrical":  Mechanical,
	"paint":       Aesthetic,
	"landscaping": Aesthetic,
	"insulation":  Efficiency,
	"windows":     Efficiency,
	"radon":       Safety,
}

type substringEntry struct {
	keyword  string
	category string
}

var substringMatches = []substringEntry{
	{"molding", Aesthetic},

	// Safety
	{"carbon monoxide", Safety},
	{"smoke detector", Safety},
	{"smoke alarm", Safety},
	{"fire extinguisher", Safety},
	{"handrail", Safety},
	{"railing", Safety},
	{"radon", Safety},
	{"mold", Safety},
	{"gfci", Safety},

	// Efficiency
	{"weatherstrip", Efficiency},
	{"thermostat", Efficiency},
	{"insulat", Efficiency},
	{"solar", Efficiency},
	{"window", Efficiency},
	{"draft", Efficiency},
	{"caulk", Efficiency},
	{"attic", Efficiency},

	// Mechanical
	{"water heater", Mechanical},
	{"air condition", Mechanical},
	{"sump pump", Mechanical},
	{"heat pump", Mechanical},
	{"dishwasher", Mechanical},
	{"appliance", Mechanical},
	{"furnace", Mechanical},
	{"boiler", Mechanical},
	{"plumb", Mechanical},
	{"septic", Mechanical},
	{"hvac", Mechanical},
	{"duct", Mechanical},
	{"pipe", Mechanical},
	{"drain", Mechanical},
	{"faucet", Mechanical},
	{"wiring", Mechanical},
	{"electric", Mechanical},
	{"breaker", Mechanical},

	// Structural
	{"foundation", Structural},
	{"driveway", Structural},
	{"chimney", Structural},
	{"shingle", Structural},
	{"gutter", Structural},
	{"siding", Structural},
	{"joist", Structural},
	{"beam", Structural},
	{"roof", Structural},
	{"deck", Structural},
	{"porch", Structural},
	{"crack", Structural},

	// Aesthetic
	{"landscap", Aesthetic},
	{"cabinet", Aesthetic},
	{"drywall", Aesthetic},
	{"flooring", Aesthetic},
	{"carpet", Aesthetic},
	{"paint", Aesthetic},
	{"lawn", Aesthetic},
	{"trim", Aesthetic},
}
