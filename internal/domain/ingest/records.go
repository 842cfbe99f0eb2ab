package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// Format is the encoding of an uploaded file.
type Format string

// Upload formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if f != FormatCSV && f != FormatJSON {
		return "", fmt.Errorf("%w: unsupported file type: %s", domain.ErrValidation, s)
	}
	return f, nil
}

// Record is one uploaded row or JSON object, keyed by its original field names.
type Record map[string]any

// ParseRecords decodes an uploaded file. CSV needs a header row and at least
// one data row; JSON must be a non-empty array of objects.
func ParseRecords(f Format, data []byte) ([]Record, error) {
	switch f {
	case FormatCSV:
		return parseCSV(data)
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: unsupported file type: %s", domain.ErrValidation, f)
	}
}

func parseJSON(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrValidation, err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON must be an array of objects", domain.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: JSON array is empty", domain.ErrValidation)
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: all JSON elements must be objects", domain.ErrValidation)
		}
		out = append(out, Record(obj))
	}
	return out, nil
}

// parseCSV reads rows keyed by header. Each column is typed as a whole: int
// when every non-empty cell is an integer, then number, then boolean, else
// text. Empty cells are left out of their record.
func parseCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV file has no headers", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV: %v", domain.ErrValidation, err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV: %v", domain.ErrValidation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: CSV file is empty", domain.ErrValidation)
	}

	convs := make([]func(string) any, len(header))
	for col := range header {
		convs[col] = columnConverter(rows, col)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(header))
		for col, name := range header {
			if col >= len(row) || row[col] == "" {
				continue
			}
			rec[name] = convs[col](row[col])
		}
		out = append(out, rec)
	}
	return out, nil
}

func columnConverter(rows [][]string, col int) func(string) any {
	isInt, isFloat, isBool := true, true, true
	for _, row := range rows {
		if col >= len(row) || row[col] == "" {
			continue
		}
		cell := row[col]
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(cell); err != nil {
			isBool = false
		}
	}
	switch {
	case isInt:
		return func(s string) any {
			n, _ := strconv.ParseInt(s, 10, 64)
			return n
		}
	case isFloat:
		return func(s string) any {
			f, _ := strconv.ParseFloat(s, 64)
			return f
		}
	case isBool:
		return func(s string) any {
			b, _ := strconv.ParseBool(s)
			return b
		}
	default:
		return func(s string) any { return s }
	}
}

var invalidKeyChars = regexp.MustCompile(`[^0-9a-zA-Z_]+`)

// SanitizeKey turns a field name into a valid property name: runs of
// characters outside [0-9a-zA-Z_] become "_", and a name that does not start
// with a letter or underscore gets a leading "_".
func SanitizeKey(key string) string {
	s := invalidKeyChars.ReplaceAllString(key, "_")
	if s == "" || !(s[0] == '_' || (s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z')) {
		s = "_" + s
	}
	return s
}

// Object is a record ready for import.
type Object struct {
	ID         string
	Properties map[string]any
}

// ObjectID derives a deterministic UUIDv5 from the record's canonical JSON, so
// re-importing the same record overwrites instead of duplicating.
func ObjectID(rec Record) (string, error) {
	canonical, err := json.Marshal(map[string]any(rec))
	if err != nil {
		return "", fmt.Errorf("%w: record cannot be encoded: %v", domain.ErrValidation, err)
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, canonical).String(), nil
}

// Prepare sanitizes the keys of every record and assigns its id. The id is
// derived from the record as uploaded.
func Prepare(records []Record) ([]Object, error) {
	out := make([]Object, 0, len(records))
	for i, rec := range records {
		id, err := ObjectID(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		props := make(map[string]any, len(rec))
		for k, v := range rec {
			props[SanitizeKey(k)] = v
		}
		out = append(out, Object{ID: id, Properties: props})
	}
	return out, nil
}
