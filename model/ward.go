package model

// AllWards is the ward key addressing the whole dataset.
const AllWards = "all"

// Ward is one administrative ward with its female and male voter lists.
type Ward struct {
	WardNo   int      `json:"wardNo"`
	WardName string   `json:"wardName"`
	Female   []Record `json:"female"`
	Male     []Record `json:"male"`
}

// Records returns the ward's female records followed by its male records.
func (w *Ward) Records() []Record {
	records := make([]Record, 0, len(w.Female)+len(w.Male))
	records = append(records, w.Female...)
	records = append(records, w.Male...)
	return records
}

// Total returns the number of voters in the ward.
func (w *Ward) Total() int {
	return len(w.Female) + len(w.Male)
}

// Dataset is the complete voter directory.
type Dataset struct {
	Wards []Ward `json:"wards"`
}

// Records returns every record in ward order.
func (d *Dataset) Records() []Record {
	total := 0
	for i := range d.Wards {
		total += d.Wards[i].Total()
	}
	records := make([]Record, 0, total)
	for i := range d.Wards {
		records = append(records, d.Wards[i].Female...)
		records = append(records, d.Wards[i].Male...)
	}
	return records
}

// Ward returns the ward with the given number.
func (d *Dataset) Ward(wardNo int) (*Ward, bool) {
	for i := range d.Wards {
		if d.Wards[i].WardNo == wardNo {
			return &d.Wards[i], true
		}
	}
	return nil, false
}

// WardSummary is the listing entry of a ward.
type WardSummary struct {
	WardNo   int    `json:"ward_no"`
	WardName string `json:"ward_name"`
	Total    int    `json:"total"`
	Female   int    `json:"female"`
	Male     int    `json:"male"`
}

// Summary returns the listing entry of the ward.
func (w *Ward) Summary() WardSummary {
	return WardSummary{
		WardNo:   w.WardNo,
		WardName: w.WardName,
		Total:    w.Total(),
		Female:   len(w.Female),
		Male:     len(w.Male),
	}
}
