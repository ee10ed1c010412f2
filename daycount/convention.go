package daycount

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/accrual-engine/generic"
)

// Convention names a day-count convention. Each value maps to the function
// of the same name without the DC prefix.
type Convention int

const (
	DCAct360 Convention = iota
	DCAct365Fixed
	DCActActISDA
	DCActActICMA
	DCThirty360
)

var conventionNames = map[Convention]string{
	DCAct360:      "act_360",
	DCAct365Fixed: "act_365f",
	DCActActISDA:  "act_act_isda",
	DCActActICMA:  "act_act_icma",
	DCThirty360:   "30_360",
}

func (c Convention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return "unknown"
}

// RequiresReferencePeriod is true for conventions that need coupon period context.
func (c Convention) RequiresReferencePeriod() bool { return c == DCActActICMA }

// Conventions lists every convention in declaration order.
func Conventions() []Convention {
	return []Convention{DCAct360, DCAct365Fixed, DCActActISDA, DCActActICMA, DCThirty360}
}

// ParseConvention accepts the snake_case names and the usual market spellings
// ("ACT/360", "Actual/365 Fixed", "30/360", "Bond Basis", ...).
func ParseConvention(s string) (Convention, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("actual", "act", " ", "_", "/", "_", "-", "_", "(", "", ")", "").Replace(key)
	switch key {
	case "act_360", "a360":
		return DCAct360, nil
	case "act_365f", "act_365_fixed", "act_365", "a365f":
		return DCAct365Fixed, nil
	case "act_act_isda", "act_act", "act_365_isda":
		return DCActActISDA, nil
	case "act_act_icma", "act_act_isma":
		return DCActActICMA, nil
	case "30_360", "30_360_bond_basis", "bond_basis":
		return DCThirty360, nil
	default:
		return 0, &generic.ConventionError{Kind: "day_count", Value: s}
	}
}

func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Convention) UnmarshalText(b []byte) error {
	parsed, err := ParseConvention(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Fraction dispatches to the function for conv. ref is only read for
// ActActICMA, where a nil ref is not ok.
func Fraction(conv Convention, start, end generic.Date, ref *ReferencePeriod) (decimal.Decimal, bool) {
	switch conv {
	case DCAct360:
		return Act360(start, end)
	case DCAct365Fixed:
		return Act365Fixed(start, end)
	case DCActActISDA:
		return ActActISDA(start, end)
	case DCActActICMA:
		if ref == nil {
			return decimal.Zero, false
		}
		return ActActICMA(start, end, *ref)
	case DCThirty360:
		return Thirty360(start, end)
	default:
		return decimal.Zero, false
	}
}
