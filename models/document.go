package models

// Document is a schema-less resource record. Keys are persisted verbatim.
type Document map[string]interface{}

// Kind describes one resource collection and how its routes and messages are named.
type Kind struct {
	Name       string // singular label used in messages, e.g. "supply"
	Plural     string
	Collection string
	ListPath   string
	ItemPath   string
}

var (
	SupplyKind = Kind{
		Name:       "supply",
		Plural:     "supplies",
		Collection: "supply",
		ListPath:   "/supplies",
		ItemPath:   "/supply",
	}
	GratitudeKind = Kind{
		Name:       "gratitude",
		Plural:     "gratitudes",
		Collection: "gratitude",
		ListPath:   "/gratitudes",
		ItemPath:   "/gratitude",
	}
	TestimonialKind = Kind{
		Name:       "testimonial",
		Plural:     "testimonials",
		Collection: "testimonial",
		ListPath:   "/testimonial",
		ItemPath:   "/testimonial",
	}
	VolunteerKind = Kind{
		Name:       "volunteer",
		Plural:     "volunteers",
		Collection: "volunteer",
		ListPath:   "/volunteer",
		ItemPath:   "/volunteer",
	}
)

// Kinds lists every resource collection served by the API.
func Kinds() []Kind {
	return []Kind{SupplyKind, GratitudeKind, TestimonialKind, VolunteerKind}
}

// Convention fields read by the ranking and the gratitude lookup.
const (
	FieldProviderEmail = "providerEmail"
	FieldProviderName  = "providerName"
	FieldProviderPhoto = "providerPhoto"
	FieldAmount        = "amount"
	FieldSupplyID      = "supplyId"
)
