package credentials

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVStore keeps the credential table in a comma-separated file with a
// header row. Save truncates the file and writes it again from scratch, so a
// crash mid-write can leave a partial table behind.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store backed by the file at path
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the backing file path
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads every record from the file. Columns are matched by header name.
func (s *CSVStore) Load(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("credential file %s: missing column %q", s.path, name)
		}
	}

	field := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read credential row: %w", err)
		}

		records = append(records, Record{
			Email:            field(row, "email"),
			HashedPassword:   field(row, "hashed_password"),
			SecurityQuestion: field(row, "security_question"),
			SecurityAnswer:   field(row, "security_answer"),
		})
	}

	return records, nil
}

// Save overwrites the file with the header followed by records
func (s *CSVStore) Save(ctx context.Context, records []Record) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create credential file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write credential header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Email, rec.HashedPassword, rec.SecurityQuestion, rec.SecurityAnswer}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write credential row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush credential file: %w", err)
	}

	return f.Close()
}
