package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report csv: %w", err)
	}
	return nil
}

func WriteStations(w io.Writer, tallies []domain.StationTally) error {
	return writeRows(w, stationRows(tallies))
}

func WriteLocations(w io.Writer, tallies []domain.LocationTally) error {
	return writeRows(w, locationRows(tallies))
}

func WriteSchedule(w io.Writer, tallies []domain.BucketTally) error {
	return writeRows(w, scheduleRows(tallies))
}

func WriteCategories(w io.Writer, tallies []domain.CategoryTally) error {
	return writeRows(w, categoryRows(tallies))
}

// WriteGeneral renders the totals followed by each breakdown, separated by
// empty lines.
func WriteGeneral(w io.Writer, report *domain.GeneralReport) error {
	rows := [][]string{
		{"metric", "value"},
		{"registered_voters", itoa(report.RegisteredVoters)},
		{"voted_voters", itoa(report.VotedVoters)},
		{"pending", itoa(report.Pending)},
		{"participation", ftoa(report.Participation)},
	}
	for _, section := range [][][]string{
		locationRows(report.ByLocation),
		categoryRows(report.ByCategory),
		scheduleRows(report.BySchedule),
	} {
		rows = append(rows, []string{""})
		rows = append(rows, section...)
	}
	return writeRows(w, rows)
}

func stationRows(tallies []domain.StationTally) [][]string {
	rows := [][]string{{"station_id", "name", "location", "day", "open", "votes"}}
	for _, t := range tallies {
		rows = append(rows, []string{t.StationID, t.Name, t.Location, t.Day.String(), yesNo(t.IsOpen), itoa(t.Votes)})
	}
	return rows
}

func locationRows(tallies []domain.LocationTally) [][]string {
	rows := [][]string{{"location", "votes", "participation"}}
	for _, t := range tallies {
		rows = append(rows, []string{t.Location, itoa(t.Votes), ftoa(t.Participation)})
	}
	return rows
}

func scheduleRows(tallies []domain.BucketTally) [][]string {
	rows := [][]string{{"bucket", "votes"}}
	for _, t := range tallies {
		rows = append(rows, []string{string(t.Bucket), itoa(t.Votes)})
	}
	return rows
}

func categoryRows(tallies []domain.CategoryTally) [][]string {
	rows := [][]string{{"category", "registered", "voted", "pending", "participation"}}
	for _, t := range tallies {
		rows = append(rows, []string{t.Category, itoa(t.Registered), itoa(t.Voted), itoa(t.Pending), ftoa(t.Participation)})
	}
	return rows
}
