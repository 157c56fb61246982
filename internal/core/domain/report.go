package domain

import (
	"math"
	"strings"
)

type ReportType string

const (
	ReportGeneral  ReportType = "general"
	ReportStation  ReportType = "station"
	ReportLocation ReportType = "location"
	ReportSchedule ReportType = "schedule"
	ReportCategory ReportType = "category"
)

func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(strings.ToLower(s)); t {
	case ReportGeneral, ReportStation, ReportLocation, ReportSchedule, ReportCategory:
		return t, nil
	}
	return "", ErrUnknownReportType
}

type TimeBucket string

const (
	BucketMorning   TimeBucket = "Morning (06:00-11:59)"
	BucketAfternoon TimeBucket = "Afternoon (12:00-17:59)"
	BucketEvening   TimeBucket = "Evening (18:00-23:59)"
	BucketNight     TimeBucket = "Night (00:00-05:59)"
)

// TimeBuckets lists the buckets in report order.
var TimeBuckets = []TimeBucket{BucketMorning, BucketAfternoon, BucketEvening, BucketNight}

func BucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 6 && hour <= 11:
		return BucketMorning
	case hour >= 12 && hour <= 17:
		return BucketAfternoon
	case hour >= 18 && hour <= 23:
		return BucketEvening
	default:
		return BucketNight
	}
}

// Participation is voted/registered as a percentage rounded to two decimals.
func Participation(voted, registered int) float64 {
	if registered <= 0 {
		return 0
	}
	return math.Round(float64(voted)/float64(registered)*10000) / 100
}

type StationTally struct {
	StationID string `json:"station_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Day       Day    `json:"day"`
	IsOpen    bool   `json:"is_open"`
	Votes     int    `json:"votes"`
}

// LocationTally counts votes by the location where they were cast.
type LocationTally struct {
	Location      string  `json:"location"`
	Votes         int     `json:"votes"`
	Participation float64 `json:"participation"`
}

type CategoryTally struct {
	Category      string  `json:"category"`
	Registered    int     `json:"registered"`
	Voted         int     `json:"voted"`
	Pending       int     `json:"pending"`
	Participation float64 `json:"participation"`
}

type HourTally struct {
	Hour  int
	Votes int
}

type BucketTally struct {
	Bucket TimeBucket `json:"bucket"`
	Votes  int        `json:"votes"`
}

// Bucketize folds per-hour counts into the four fixed buckets, all present.
func Bucketize(hours []HourTally) []BucketTally {
	counts := make(map[TimeBucket]int, len(TimeBuckets))
	for _, h := range hours {
		counts[BucketForHour(h.Hour)] += h.Votes
	}
	out := make([]BucketTally, 0, len(TimeBuckets))
	for _, b := range TimeBuckets {
		out = append(out, BucketTally{Bucket: b, Votes: counts[b]})
	}
	return out
}

type Totals struct {
	RegisteredVoters int `json:"registered_voters"`
	VotedVoters      int `json:"voted_voters"`
}

type GeneralReport struct {
	RegisteredVoters int             `json:"registered_voters"`
	VotedVoters      int             `json:"voted_voters"`
	Pending          int             `json:"pending"`
	Participation    float64         `json:"participation"`
	ByLocation       []LocationTally `json:"by_location"`
	ByCategory       []CategoryTally `json:"by_category"`
	BySchedule       []BucketTally   `json:"by_schedule"`
}
