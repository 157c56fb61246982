package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

func TestReadVotersSpanishHeaders(t *testing.T) {
	input := "\ufeffDNI,Nombre,Apellido,Especialidad\n" +
		"12345678, Ana ,Diaz,Docente\n" +
		"\n" +
		"87654321,Luis,Perez,\n"

	records, err := ReadVoters(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.VoterRecord{
		{NationalID: "12345678", GivenName: "Ana", FamilyName: "Diaz", Category: "Docente"},
		{NationalID: "87654321", GivenName: "Luis", FamilyName: "Perez", Category: ""},
	}, records)
}

func TestReadVotersSemicolonAndReorderedColumns(t *testing.T) {
	input := "category;family_name;national_id;given_name\n" +
		"Alumno;Gomez;11223344;Eva\n"

	records, err := ReadVoters(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.VoterRecord{NationalID: "11223344", GivenName: "Eva", FamilyName: "Gomez", Category: "Alumno"}, records[0])
}

func TestReadVotersShortRow(t *testing.T) {
	records, err := ReadVoters(strings.NewReader("dni,nombre,apellido,especialidad\n12345678,Ana\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Complete())
}

func TestReadVotersRejectsBadFiles(t *testing.T) {
	_, err := ReadVoters(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidImportFile)

	_, err = ReadVoters(strings.NewReader("dni,nombre\n12345678,Ana\n"))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "apellido, especialidad")
}

func TestWriteVoters(t *testing.T) {
	votedAt := time.Date(2024, 10, 14, 10, 30, 0, 0, time.UTC)
	var buf bytes.Buffer

	err := WriteVoters(&buf, []domain.VoterStatus{
		{
			Voter:           domain.Voter{NationalID: "12345678", GivenName: "Ana", FamilyName: "Diaz", Category: "Docente", Enabled: true},
			Voted:           true,
			VotedAt:         &votedAt,
			StationName:     "Mesa 1",
			StationLocation: "Sede Central",
		},
		{Voter: domain.Voter{NationalID: "87654321", GivenName: "Luis", FamilyName: "Perez, Jr", Category: "Alumno"}},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"dni,nombre,apellido,especialidad,habilitado,voto,fecha_voto,mesa,sede\n"+
			"12345678,Ana,Diaz,Docente,si,si,2024-10-14 10:30:00,Mesa 1,Sede Central\n"+
			"87654321,Luis,\"Perez, Jr\",Alumno,no,no,,,\n",
		buf.String())
}

func TestWriteGeneral(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGeneral(&buf, &domain.GeneralReport{
		RegisteredVoters: 3,
		VotedVoters:      2,
		Pending:          1,
		Participation:    66.67,
		ByLocation:       []domain.LocationTally{{Location: "Sede", Votes: 2, Participation: 100}},
		BySchedule:       domain.Bucketize(nil),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "metric,value\nregistered_voters,3\n"))
	assert.Contains(t, out, "participation,66.67\n")
	assert.Contains(t, out, "Sede,2,100.00\n")
	assert.Contains(t, out, "Night (00:00-05:59),0\n")
}
