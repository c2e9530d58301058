package triage

import "strings"

type Category string

const (
	CategoryHumanNeeded  Category = "HUMAN_NEEDED"
	CategoryAutoReply    Category = "AUTO_REPLY"
	CategoryNoResponse   Category = "NO_RESPONSE"
	CategoryError        Category = "ERROR"
	CategoryUnrecognized Category = "UNRECOGNIZED"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryHumanNeeded,
	CategoryAutoReply,
	CategoryNoResponse,
	CategoryError,
	CategoryUnrecognized,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryHumanNeeded, CategoryAutoReply, CategoryNoResponse:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a model token onto one of the three dispositions.
// Anything else is CategoryUnrecognized.
func ParseCategory(token string) Category {
	t := strings.TrimSpace(token)
	t = strings.Trim(t, "*`\"' ")
	t = strings.TrimRight(t, ":.")
	t = strings.ToUpper(strings.TrimSpace(t))

	c := Category(t)
	if c.IsValid() {
		return c
	}
	return CategoryUnrecognized
}
