package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketForHour(t *testing.T) {
	assert.Equal(t, BucketNight, BucketForHour(0))
	assert.Equal(t, BucketNight, BucketForHour(5))
	assert.Equal(t, BucketMorning, BucketForHour(6))
	assert.Equal(t, BucketMorning, BucketForHour(11))
	assert.Equal(t, BucketAfternoon, BucketForHour(12))
	assert.Equal(t, BucketAfternoon, BucketForHour(17))
	assert.Equal(t, BucketEvening, BucketForHour(18))
	assert.Equal(t, BucketEvening, BucketForHour(23))
}

func TestBucketizeKeepsEveryBucket(t *testing.T) {
	got := Bucketize([]HourTally{{Hour: 7, Votes: 3}, {Hour: 9, Votes: 2}, {Hour: 2, Votes: 1}})
	assert.Equal(t, []BucketTally{
		{Bucket: BucketMorning, Votes: 5},
		{Bucket: BucketAfternoon, Votes: 0},
		{Bucket: BucketEvening, Votes: 0},
		{Bucket: BucketNight, Votes: 1},
	}, got)
}

func TestParticipation(t *testing.T) {
	assert.Equal(t, 0.0, Participation(3, 0))
	assert.Equal(t, 33.33, Participation(1, 3))
	assert.Equal(t, 100.0, Participation(4, 4))
}

func TestParseReportType(t *testing.T) {
	rt, err := ParseReportType("Schedule")
	assert.NoError(t, err)
	assert.Equal(t, ReportSchedule, rt)

	_, err = ParseReportType("votes")
	assert.ErrorIs(t, err, ErrUnknownReportType)
	assert.ErrorIs(t, err, ErrValidation)
}
