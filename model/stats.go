package model

// OccupationCount is the number of voters sharing an occupation.
type OccupationCount struct {
	Occupation string `json:"occupation"`
	Count      int    `json:"count"`
}

// AgeBucket is the number of voters within an inclusive age range.
// Max is zero for the open-ended last bucket.
type AgeBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max,omitempty"`
	Count int    `json:"count"`
}

// Stats summarizes a set of voter records.
type Stats struct {
	Total           int               `json:"total"`
	Female          int               `json:"female"`
	Male            int               `json:"male"`
	Occupations     []OccupationCount `json:"occupations"`
	AgeDistribution []AgeBucket       `json:"age_distribution"`
	MinBirthYear    int               `json:"min_birth_year,omitempty"`
	MaxBirthYear    int               `json:"max_birth_year,omitempty"`
}
