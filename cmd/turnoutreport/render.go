package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

var (
	title   = color.New(color.FgCyan, color.Bold)
	section = color.New(color.FgYellow)
)

func renderGeneral(w io.Writer, report *domain.GeneralReport) {
	title.Fprintln(w, "\n=== Voter Turnout ===")

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.AppendBulk([][]string{
		{"Registered voters", strconv.Itoa(report.RegisteredVoters)},
		{"Voted", strconv.Itoa(report.VotedVoters)},
		{"Pending", strconv.Itoa(report.Pending)},
		{"Participation", percent(report.Participation)},
	})
	summary.Render()

	section.Fprintln(w, "\nVotes by Location")
	locations := tablewriter.NewWriter(w)
	locations.SetHeader([]string{"Location", "Votes", "Share"})
	for _, l := range report.ByLocation {
		locations.Append([]string{l.Location, strconv.Itoa(l.Votes), percent(l.Participation)})
	}
	locations.Render()

	section.Fprintln(w, "\nTurnout by Category")
	categories := tablewriter.NewWriter(w)
	categories.SetHeader([]string{"Category", "Registered", "Voted", "Pending", "Participation"})
	for _, c := range report.ByCategory {
		categories.Append([]string{
			c.Category,
			strconv.Itoa(c.Registered),
			strconv.Itoa(c.Voted),
			strconv.Itoa(c.Pending),
			percent(c.Participation),
		})
	}
	categories.Render()

	section.Fprintln(w, "\nVotes by Time of Day")
	schedule := tablewriter.NewWriter(w)
	schedule.SetHeader([]string{"Time Slot", "Votes"})
	for _, b := range report.BySchedule {
		schedule.Append([]string{string(b.Bucket), strconv.Itoa(b.Votes)})
	}
	schedule.Render()
}

func renderStations(w io.Writer, tallies []domain.StationTally) {
	section.Fprintln(w, "\nVotes by Polling Station")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Station", "Location", "Day", "Open", "Votes"})
	for _, s := range tallies {
		open := "no"
		if s.IsOpen {
			open = "yes"
		}
		table.Append([]string{s.Name, s.Location, s.Day.String(), open, strconv.Itoa(s.Votes)})
	}
	table.Render()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
