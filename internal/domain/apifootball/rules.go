package apifootball

import (
	"sort"
	"time"
)

const (
	StatusShortFinished = "FT"
	StatusLongFinished  = "Match Finished"

	// SeasonStartMonth is the month from which the calendar year is the season year.
	SeasonStartMonth = time.August

	// DateLayout is the date format used by the fixtures endpoints.
	DateLayout = "2006-01-02"

	// LatestDateLookbackDays is how many days GetLatestAvailableDate probes, today included.
	LatestDateLookbackDays = 30
)

// CurrentSeason returns the season year that is running at now. Seasons
// start in August, so January 2025 belongs to season 2024.
func CurrentSeason(now time.Time) int {
	if now.Month() < SeasonStartMonth {
		return now.Year() - 1
	}
	return now.Year()
}

// IsFinished reports whether a fixture has full-time status.
func (f FixtureData) IsFinished() bool {
	return f.Fixture.Status.Short == StatusShortFinished || f.Fixture.Status.Long == StatusLongFinished
}

// LatestCompletedRound returns the round label of the most recently finished
// fixture and every finished fixture carrying that label, in input order. Ties on
// timestamp are broken by the higher fixture id. ok is false when no fixture
// has finished.
func LatestCompletedRound(fixtures []FixtureData) (round string, matches []FixtureData, ok bool) {
	finished := make([]FixtureData, 0, len(fixtures))
	for _, f := range fixtures {
		if f.IsFinished() {
			finished = append(finished, f)
		}
	}
	if len(finished) == 0 {
		return "", nil, false
	}

	sort.SliceStable(finished, func(i, j int) bool {
		if finished[i].Fixture.Timestamp != finished[j].Fixture.Timestamp {
			return finished[i].Fixture.Timestamp > finished[j].Fixture.Timestamp
		}
		return finished[i].Fixture.ID > finished[j].Fixture.ID
	})

	round = finished[0].League.Round
	matches = make([]FixtureData, 0)
	for _, f := range fixtures {
		if f.IsFinished() && f.League.Round == round {
			matches = append(matches, f)
		}
	}
	return round, matches, true
}

// LookbackDates returns the dates probed for the latest available fixture
// date, newest first, starting at the calendar day of now.
func LookbackDates(now time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, day.AddDate(0, 0, -i).Format(DateLayout))
	}
	return out
}
