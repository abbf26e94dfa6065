// Package dataset loads and saves the voter directory JSON file.
//
// The file groups records by ward: {"wards": [{"wardNo", "wardName",
// "female": [...], "male": [...]}]}. A legacy file holding only the female
// and male lists is read as ward 1.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/numerals"
	"github.com/khalidmahamud/voter-info-web/model"
)

const filePerm = 0o644

// Load reads and decodes the dataset file at path.
func Load(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses dataset JSON. source names the data in errors.
func Decode(data []byte, source string) (*model.Dataset, error) {
	var raw rawDataset
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewDatasetError(source, err)
	}

	wards := raw.Wards
	if len(wards) == 0 && (len(raw.Female) > 0 || len(raw.Male) > 0) {
		wards = []rawWard{{WardNo: 1, Female: raw.Female, Male: raw.Male}}
	}

	ds := &model.Dataset{Wards: make([]model.Ward, 0, len(wards))}
	seen := make(map[int]bool, len(wards))
	for _, rw := range wards {
		no := int(rw.WardNo)
		if no <= 0 {
			return nil, errors.NewDatasetError(source, fmt.Errorf("ward number must be positive, got %d", no))
		}
		if seen[no] {
			return nil, errors.NewDatasetError(source, fmt.Errorf("ward %d appears more than once", no))
		}
		seen[no] = true

		ds.Wards = append(ds.Wards, model.Ward{
			WardNo:   no,
			WardName: rw.WardName,
			Female:   annotate(rw.Female, no, model.GenderFemale),
			Male:     annotate(rw.Male, no, model.GenderMale),
		})
	}
	return ds, nil
}

// annotate converts raw records and stamps ward, gender and a stable ID.
func annotate(raw []rawRecord, wardNo int, gender model.Gender) []model.Record {
	records := make([]model.Record, len(raw))
	used := make(map[string]bool, len(raw))
	for i, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = deriveID(wardNo, gender, string(r.SerialNo), i)
			if used[id] {
				id = fmt.Sprintf("%s-%d", id, i+1)
			}
		}
		used[id] = true

		records[i] = model.Record{
			ID:          id,
			SerialNo:    string(r.SerialNo),
			Name:        r.Name,
			VoterNo:     string(r.VoterNo),
			FatherName:  r.FatherName,
			MotherName:  r.MotherName,
			Occupation:  r.Occupation,
			DateOfBirth: r.DateOfBirth,
			Address:     r.Address,
			Gender:      gender,
			WardNo:      wardNo,
		}
	}
	return records
}

// deriveID builds "<ward>-<gender>-<serial>", using the list position when
// the serial number is missing.
func deriveID(wardNo int, gender model.Gender, serial string, position int) string {
	serial = strings.TrimSpace(numerals.ToArabic(serial))
	if serial == "" {
		serial = fmt.Sprintf("p%d", position+1)
	}
	return fmt.Sprintf("%d-%s-%s", wardNo, gender, serial)
}

// Encode renders the dataset as indented JSON in the ward file layout.
func Encode(ds *model.Dataset) ([]byte, error) {
	out := struct {
		Wards []rawWard `json:"wards"`
	}{Wards: make([]rawWard, len(ds.Wards))}

	for i, w := range ds.Wards {
		out.Wards[i] = rawWard{
			WardNo:   wardNumber(w.WardNo),
			WardName: w.WardName,
			Female:   toRaw(w.Female),
			Male:     toRaw(w.Male),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return append(data, '\n'), nil
}

func toRaw(records []model.Record) []rawRecord {
	raw := make([]rawRecord, len(records))
	for i, r := range records {
		raw[i] = rawRecord{
			ID:          r.ID,
			SerialNo:    flexString(r.SerialNo),
			Name:        r.Name,
			VoterNo:     flexString(r.VoterNo),
			FatherName:  r.FatherName,
			MotherName:  r.MotherName,
			Occupation:  r.Occupation,
			DateOfBirth: r.DateOfBirth,
			Address:     r.Address,
		}
	}
	return raw
}

// Save writes the dataset to path, replacing any existing file atomically.
// It creates necessary directories if they don't exist.
func Save(path string, ds *model.Dataset) error {
	data, err := Encode(ds)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ConvertNumerals returns a copy of ds with every digit in the record text
// rewritten to Bengali (toBengali) or ASCII digits. Ward numbers stay numeric
// and record IDs are left untouched.
func ConvertNumerals(ds *model.Dataset, toBengali bool) *model.Dataset {
	convert := numerals.ToArabic
	if toBengali {
		convert = numerals.ToBengali
	}

	out := &model.Dataset{Wards: make([]model.Ward, len(ds.Wards))}
	for i, w := range ds.Wards {
		out.Wards[i] = model.Ward{
			WardNo:   w.WardNo,
			WardName: convert(w.WardName),
			Female:   convertRecords(w.Female, convert),
			Male:     convertRecords(w.Male, convert),
		}
	}
	return out
}

func convertRecords(records []model.Record, convert func(string) string) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		r.SerialNo = convert(r.SerialNo)
		r.Name = convert(r.Name)
		r.VoterNo = convert(r.VoterNo)
		r.FatherName = convert(r.FatherName)
		r.MotherName = convert(r.MotherName)
		r.Occupation = convert(r.Occupation)
		r.DateOfBirth = convert(r.DateOfBirth)
		r.Address = convert(r.Address)
		out[i] = r
	}
	return out
}
