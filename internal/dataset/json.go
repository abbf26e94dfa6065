package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/khalidmahamud/voter-info-web/internal/numerals"
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// wardNumber accepts a JSON number or a string of digits in either script.
type wardNumber int

func (w *wardNumber) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("wardNo: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(numerals.ToArabic(string(raw))))
	if err != nil {
		return fmt.Errorf("wardNo %q is not a number", string(raw))
	}
	*w = wardNumber(n)
	return nil
}

type rawRecord struct {
	ID          string     `json:"id,omitempty"`
	SerialNo    flexString `json:"sl_no"`
	Name        string     `json:"name"`
	VoterNo     flexString `json:"voter_no"`
	FatherName  string     `json:"father_name"`
	MotherName  string     `json:"mother_name"`
	Occupation  string     `json:"occupation"`
	DateOfBirth string     `json:"dob"`
	Address     string     `json:"address"`
}

type rawWard struct {
	WardNo   wardNumber  `json:"wardNo"`
	WardName string      `json:"wardName"`
	Female   []rawRecord `json:"female"`
	Male     []rawRecord `json:"male"`
}

// rawDataset covers both the ward file and the legacy single-ward file.
type rawDataset struct {
	Wards  []rawWard   `json:"wards"`
	Female []rawRecord `json:"female"`
	Male   []rawRecord `json:"male"`
}
