// Package csvio reads voter rolls from CSV and renders voters and reports as CSV.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

const (
	colNationalID = iota
	colGivenName
	colFamilyName
	colCategory
	columnCount
)

// headerAliases maps accepted header names, lowercased, to their column.
var headerAliases = map[string]int{
	"dni":          colNationalID,
	"national_id":  colNationalID,
	"nombre":       colGivenName,
	"nombres":      colGivenName,
	"given_name":   colGivenName,
	"apellido":     colFamilyName,
	"apellidos":    colFamilyName,
	"family_name":  colFamilyName,
	"especialidad": colCategory,
	"categoria":    colCategory,
	"category":     colCategory,
}

var columnNames = [columnCount]string{"dni", "nombre", "apellido", "especialidad"}

// ReadVoters parses a roll with a header row. Comma and semicolon separated
// files are accepted. Rows are returned as read; screening them is up to the
// caller.
func ReadVoters(r io.Reader) ([]domain.VoterRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImportFile, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidImportFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImportFile, err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.VoterRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImportFile, err)
		}
		if blank(row) {
			continue
		}

		field := func(col int) string {
			if i := index[col]; i < len(row) {
				return row[i]
			}
			return ""
		}
		records = append(records, domain.VoterRecord{
			NationalID: field(colNationalID),
			GivenName:  field(colGivenName),
			FamilyName: field(colFamilyName),
			Category:   field(colCategory),
		}.Normalize())
	}
	return records, nil
}

// delimiter picks semicolon when the header line has more of them than commas.
func delimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func headerIndex(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if col, ok := headerAliases[name]; ok && index[col] < 0 {
			index[col] = i
		}
	}

	var missing []string
	for col, i := range index {
		if i < 0 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("%w: missing columns %s", domain.ErrInvalidImportFile, strings.Join(missing, ", "))
	}
	return index, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// WriteVoters renders the roll with its voting status.
func WriteVoters(w io.Writer, voters []domain.VoterStatus) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"dni", "nombre", "apellido", "especialidad", "habilitado", "voto", "fecha_voto", "mesa", "sede"}}
	for _, v := range voters {
		votedAt := ""
		if v.VotedAt != nil {
			votedAt = v.VotedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			v.NationalID,
			v.GivenName,
			v.FamilyName,
			v.Category,
			yesNo(v.Enabled),
			yesNo(v.Voted),
			votedAt,
			v.StationName,
			v.StationLocation,
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write voters csv: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "si"
	}
	return "no"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
