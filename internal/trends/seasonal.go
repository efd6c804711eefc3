package trends

import (
	"time"

	"coach/internal/stats"
	"coach/internal/store"
)

// Season is a meteorological quarter of the calendar year.
type Season string

const (
	SeasonWinter Season = "winter" // Dec-Feb
	SeasonSpring Season = "spring" // Mar-May
	SeasonSummer Season = "summer" // Jun-Aug
	SeasonFall   Season = "fall"   // Sep-Nov
)

var seasonOrder = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// Per-season sample counts needed for each confidence tier.
const (
	seasonHighCount   = 30
	seasonMediumCount = 10
)

func seasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// seasonYear assigns December to the following year's winter so that a
// Dec-Jan-Feb block counts as one season.
func seasonYear(t time.Time) int {
	if t.Month() == time.December {
		return t.Year() + 1
	}
	return t.Year()
}

// SeasonStats aggregates the primary metric across every year's worth of
// one calendar season.
type SeasonStats struct {
	Season Season
	Count  int
	Mean   float64
	Tier   stats.ConfidenceTier
}

// Seasonal holds per-season aggregates plus a year-over-year comparison of
// the season in progress.
type Seasonal struct {
	Metric        MetricMode
	Seasons       []SeasonStats // winter, spring, summer, fall
	BestSeason    Season
	CurrentSeason Season
	YearOverYear  *float64 // percent vs the same season one year earlier
}

// AnalyzeSeasons buckets workouts by calendar season. It returns nil when
// no workout carries the primary metric.
func AnalyzeSeasons(workouts []store.Workout, now time.Time) *Seasonal {
	mode := modeFor(workouts)

	bySeason := make(map[Season][]float64)
	type seasonKey struct {
		season Season
		year   int
	}
	byYear := make(map[seasonKey][]float64)

	total := 0
	for _, w := range workouts {
		v, ok := performanceValue(w, mode)
		if !ok {
			continue
		}
		s := seasonOf(w.StartDate)
		bySeason[s] = append(bySeason[s], v)
		byYear[seasonKey{s, seasonYear(w.StartDate)}] = append(byYear[seasonKey{s, seasonYear(w.StartDate)}], v)
		total++
	}
	if total == 0 {
		return nil
	}

	seasons := make([]SeasonStats, 0, len(seasonOrder))
	var best Season
	bestMean := 0.0
	for _, s := range seasonOrder {
		values := bySeason[s]
		st := SeasonStats{Season: s, Count: len(values), Tier: seasonTier(len(values))}
		if len(values) > 0 {
			st.Mean = stats.Mean(values)
			if best == "" || st.Mean > bestMean {
				best = s
				bestMean = st.Mean
			}
		}
		seasons = append(seasons, st)
	}

	current := seasonOf(now)
	var yoy *float64
	thisYear := byYear[seasonKey{current, seasonYear(now)}]
	lastYear := byYear[seasonKey{current, seasonYear(now) - 1}]
	if len(thisYear) > 0 && len(lastYear) > 0 {
		priorMean := stats.Mean(lastYear)
		if priorMean != 0 {
			delta := (stats.Mean(thisYear) - priorMean) / priorMean * 100
			yoy = &delta
		}
	}

	return &Seasonal{
		Metric:        mode,
		Seasons:       seasons,
		BestSeason:    best,
		CurrentSeason: current,
		YearOverYear:  yoy,
	}
}

func seasonTier(count int) stats.ConfidenceTier {
	switch {
	case count >= seasonHighCount:
		return stats.TierHigh
	case count >= seasonMediumCount:
		return stats.TierMedium
	default:
		return stats.TierLow
	}
}
