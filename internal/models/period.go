package models

type PeriodFilter string

const (
	Period7d  PeriodFilter = "7d"
	Period30d PeriodFilter = "30d"
	Period90d PeriodFilter = "90d"

	DefaultPeriod = Period30d
)

var Periods = []PeriodFilter{Period7d, Period30d, Period90d}

var periodDays = map[PeriodFilter]int{
	Period7d:  7,
	Period30d: 30,
	Period90d: 90,
}

var periodMultipliers = map[PeriodFilter]float64{
	Period7d:  0.25,
	Period30d: 1.0,
	Period90d: 3.0,
}

// ParsePeriod reports whether s is one of the supported period codes.
func ParsePeriod(s string) (PeriodFilter, bool) {
	p := PeriodFilter(s)
	if _, ok := periodDays[p]; !ok {
		return "", false
	}
	return p, true
}

// PeriodOrDefault coerces a missing or unknown code to DefaultPeriod.
func PeriodOrDefault(s string) PeriodFilter {
	if p, ok := ParsePeriod(s); ok {
		return p
	}
	return DefaultPeriod
}

func (p PeriodFilter) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[DefaultPeriod]
}

func (p PeriodFilter) Multiplier() float64 {
	if m, ok := periodMultipliers[p]; ok {
		return m
	}
	return periodMultipliers[DefaultPeriod]
}

func (p PeriodFilter) String() string {
	return string(p)
}
