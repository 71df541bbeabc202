package recurrence

import "fmt"

type Freq int

const (
	Daily Freq = iota
	Weekly
	Monthly
	Yearly
)

// Rule is a fixed-interval recurrence. Interval is always >= 1 for a rule
// produced by Days or Months.
type Rule struct {
	Freq     Freq
	Interval int
}

// Days returns a rule repeating every n calendar days. ok is false when n < 1,
// which callers treat as "not recurring".
func Days(n int) (Rule, bool) {
	if n < 1 {
		return Rule{}, false
	}
	return Rule{Freq: Daily, Interval: n}, true
}

// Months returns a rule repeating every n calendar months.
func Months(n int) Rule {
	if n < 1 {
		n = 1
	}
	return Rule{Freq: Monthly, Interval: n}
}

// Describe returns a human-readable description of the rule.
func (r Rule) Describe() string {
	unit := map[Freq]string{Daily: "day", Weekly: "week", Monthly: "month", Yearly: "year"}[r.Freq]
	if unit == "" {
		return ""
	}
	if r.Interval <= 1 {
		switch r.Freq {
		case Daily:
			return "Repeats daily"
		default:
			return "Repeats " + unit + "ly"
		}
	}
	return fmt.Sprintf("Repeats every %d %ss", r.Interval, unit)
}
