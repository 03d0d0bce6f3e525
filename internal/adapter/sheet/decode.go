package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
)

// Decode reads a spreadsheet CSV export. The first physical line is a banner
// and is always discarded; the header is on the second line. NUL bytes are
// removed and a UTF-8 or UTF-16 byte order mark selects the encoding.
//
// Rows shorter than the header leave the trailing columns absent; extra
// fields are ignored. An export with no header yields an empty sheet.
func Decode(r io.Reader) (domain.Sheet, error) {
	utf8Reader := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("read export: %w", err)
	}
	data = bytes.ReplaceAll(data, []byte{0}, nil)

	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return domain.Sheet{}, nil
	}
	data = data[nl+1:]

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Sheet{}, nil
	}
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	s := domain.Sheet{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Sheet{}, fmt.Errorf("read row: %w", err)
		}

		row := make(domain.RawRow, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			// a duplicated header keeps its last column
			row[col] = rec[i]
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
