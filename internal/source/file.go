package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/acqscore/schema"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a target file.
type Format string

// All input formats supported.
const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
	CSVFormat  Format = "csv"
)

// ErrUnsupportedFormat is returned for files whose extension is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// idNamespace seeds derived target IDs so that they are stable across runs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("acqscore"))

// FileLoader reads targets from a JSON, YAML or CSV file.
type FileLoader struct {
	path string
}

// NewFileLoader returns a loader for the file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads, validates and decodes every record in the file.
func (l *FileLoader) Load(ctx context.Context) ([]schema.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(l.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}
	return ParseRecords(data, format)
}

// FormatFromPath infers the input format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".csv":
		return CSVFormat, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .json, .yaml, .yml or .csv)", ErrUnsupportedFormat, path)
	}
}

// ParseRecords decodes a list of targets, validating each one before conversion.
func ParseRecords(data []byte, format Format) ([]schema.CompanyRecord, error) {
	var raws []map[string]any
	var err error

	switch format {
	case JSONFormat:
		err = json.Unmarshal(data, &raws)
	case YAMLFormat:
		err = yaml.Unmarshal(data, &raws)
	case CSVFormat:
		raws, err = decodeCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s targets: %w", format, err)
	}

	records := make([]schema.CompanyRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := convertRecord(i, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseCompanyJSON decodes and validates a single JSON object.
func ParseCompanyJSON(data []byte) (schema.CompanyRecord, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return schema.CompanyRecord{}, fmt.Errorf("decoding company: %w", err)
	}
	return convertRecord(0, raw)
}

// convertRecord validates raw and converts it into a CompanyRecord.
func convertRecord(index int, raw map[string]any) (schema.CompanyRecord, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	if err := ValidateRecord(index, raw); err != nil {
		return schema.CompanyRecord{}, err
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return schema.CompanyRecord{}, fmt.Errorf("record %d: %w", index, err)
	}
	var record schema.CompanyRecord
	if err := json.Unmarshal(encoded, &record); err != nil {
		return schema.CompanyRecord{}, fmt.Errorf("record %d: %w", index, err)
	}
	record.Provided = providedFields(raw)
	return normalizeRecord(index, record), nil
}

// providedFields returns the keys of raw that carry a value.
func providedFields(raw map[string]any) schema.FieldSet {
	fields := make(schema.FieldSet, len(raw))
	for k, v := range raw {
		if v != nil {
			fields[k] = true
		}
	}
	return fields
}

// normalizeRecord fills in the name and a stable ID when they are absent.
func normalizeRecord(index int, c schema.CompanyRecord) schema.CompanyRecord {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	if c.CompanyName == "" {
		c.CompanyName = fmt.Sprintf("Target %d", index+1)
	}
	if c.ID == "" {
		c.ID = TargetID(c)
	}
	return c
}

// TargetID derives a deterministic ID from a company's name and website.
func TargetID(c schema.CompanyRecord) string {
	key := strings.ToLower(c.CompanyName) + "|" + strings.ToLower(c.Website)
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// decodeCSV reads a header row of field names followed by one record per row.
// Cells are converted to the type the company schema declares for their column;
// cells that do not convert are kept as strings so that validation reports them.
func decodeCSV(data []byte) ([]map[string]any, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	types := fieldTypes()
	var raws []map[string]any
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		raw := make(map[string]any, len(row))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			raw[header[i]] = convertCell(cell, types[header[i]])
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// convertCell converts a CSV cell to the given JSON Schema type.
func convertCell(cell, typ string) any {
	switch typ {
	case "integer":
		if v, err := strconv.Atoi(cell); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	case "boolean":
		switch strings.ToLower(cell) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return cell
}
