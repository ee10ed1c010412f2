package calendar

import (
	"strings"

	"github.com/warp/accrual-engine/generic"
)

// BusinessDayConvention selects how a non-business date is rolled.
// It carries no data.
type BusinessDayConvention int

const (
	// Following: the first business day following the unadjusted date.
	Following BusinessDayConvention = iota
	// ModifiedFollowing: as Following, unless that falls in the next calendar
	// month, in which case the first preceding business day.
	ModifiedFollowing
	// Preceding: the first business day preceding the unadjusted date.
	Preceding
	// ModifiedPreceding: as Preceding, unless that falls in the previous
	// calendar month, in which case the first following business day.
	ModifiedPreceding
	// NoAdjustment: the unadjusted date.
	NoAdjustment
)

var conventionNames = map[BusinessDayConvention]string{
	Following:         "following",
	ModifiedFollowing: "modified_following",
	Preceding:         "preceding",
	ModifiedPreceding: "modified_preceding",
	NoAdjustment:      "no_adjustment",
}

func (c BusinessDayConvention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Conventions lists every convention in declaration order.
func Conventions() []BusinessDayConvention {
	return []BusinessDayConvention{Following, ModifiedFollowing, Preceding, ModifiedPreceding, NoAdjustment}
}

// ParseBusinessDayConvention accepts the snake_case names and common market
// spellings, case-insensitively.
func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "following", "f", "fol":
		return Following, nil
	case "modified_following", "modifiedfollowing", "mf", "modfol":
		return ModifiedFollowing, nil
	case "preceding", "p", "pre":
		return Preceding, nil
	case "modified_preceding", "modifiedpreceding", "mp", "modpre":
		return ModifiedPreceding, nil
	case "no_adjustment", "noadjustment", "none", "unadjusted":
		return NoAdjustment, nil
	default:
		return 0, &generic.ConventionError{Kind: "business_day_convention", Value: s}
	}
}

func (c BusinessDayConvention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *BusinessDayConvention) UnmarshalText(b []byte) error {
	parsed, err := ParseBusinessDayConvention(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
