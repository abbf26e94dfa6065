package model

// Gender identifies which voter list of a ward a record came from.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderFemale || g == GenderMale
}

// Field keys of a Record, matching its JSON names.
const (
	FieldID          = "id"
	FieldSerialNo    = "sl_no"
	FieldName        = "name"
	FieldVoterNo     = "voter_no"
	FieldFatherName  = "father_name"
	FieldMotherName  = "mother_name"
	FieldOccupation  = "occupation"
	FieldDateOfBirth = "dob"
	FieldAddress     = "address"
)

// TextFields lists the record fields that can carry searchable text.
var TextFields = []string{
	FieldName,
	FieldVoterNo,
	FieldFatherName,
	FieldMotherName,
	FieldOccupation,
	FieldDateOfBirth,
	FieldAddress,
}

// Record is a single voter entry. Records are immutable once loaded.
type Record struct {
	ID          string `json:"id"`
	SerialNo    string `json:"sl_no"`
	Name        string `json:"name"`
	VoterNo     string `json:"voter_no"`
	FatherName  string `json:"father_name"`
	MotherName  string `json:"mother_name"`
	Occupation  string `json:"occupation"`
	DateOfBirth string `json:"dob"`
	Address     string `json:"address"`

	Gender Gender `json:"gender,omitempty"`
	WardNo int    `json:"ward_no,omitempty"`
}

// Field returns the value of the named field and whether the name is known.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return r.ID, true
	case FieldSerialNo:
		return r.SerialNo, true
	case FieldName:
		return r.Name, true
	case FieldVoterNo:
		return r.VoterNo, true
	case FieldFatherName:
		return r.FatherName, true
	case FieldMotherName:
		return r.MotherName, true
	case FieldOccupation:
		return r.Occupation, true
	case FieldDateOfBirth:
		return r.DateOfBirth, true
	case FieldAddress:
		return r.Address, true
	default:
		return "", false
	}
}

// IsTextField reports whether name is a searchable text field.
func IsTextField(name string) bool {
	for _, f := range TextFields {
		if f == name {
			return true
		}
	}
	return false
}
