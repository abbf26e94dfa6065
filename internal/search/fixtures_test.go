package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khalidmahamud/voter-info-web/config"
	"github.com/khalidmahamud/voter-info-web/model"
)

// --- Test Helpers ---

func voter(id, name string) model.Record {
	return model.Record{
		ID:      id,
		Name:    name,
		VoterNo: fmt.Sprintf("5500%s", id),
		Gender:  model.GenderMale,
		WardNo:  1,
	}
}

// directoryRecords is a small mixed-script ward.
func directoryRecords() []model.Record {
	return []model.Record{
		{ID: "1", SerialNo: "১", Name: "Abdul Karim", VoterNo: "৫৫১২৩৪৫৬৭৮", FatherName: "Abdul Jalil", MotherName: "Rahima Begum", Occupation: "farmer", DateOfBirth: "১৫/০৬/১৯৮০", Address: "Road 12, Mirpur", Gender: model.GenderMale, WardNo: 1},
		{ID: "2", SerialNo: "২", Name: "Abdul Kader", VoterNo: "5512345679", FatherName: "Karim Uddin", MotherName: "Amena Khatun", Occupation: "teacher", DateOfBirth: "01/01/1975", Address: "Road 3, Mirpur", Gender: model.GenderMale, WardNo: 1},
		{ID: "3", SerialNo: "৩", Name: "Karim Hossain", VoterNo: "5512345680", FatherName: "Mofiz Hossain", MotherName: "Jahanara Begum", Occupation: "business", DateOfBirth: "10/10/1990", Address: "Kazipara", Gender: model.GenderMale, WardNo: 1},
		{ID: "4", SerialNo: "১", Name: "Rahima Khatun", VoterNo: "5512345681", FatherName: "Abdul Karim", MotherName: "Salma Begum", Occupation: "housewife", DateOfBirth: "05/05/2001", Address: "Road 12, Mirpur", Gender: model.GenderFemale, WardNo: 1},
		{ID: "5", SerialNo: "১০", Name: "মোছাঃ ফাতেমা বেগম", VoterNo: "৫৫১২৩৪৫৬৮২", FatherName: "মোঃ আব্দুল করিম", MotherName: "রহিমা খাতুন", Occupation: "গৃহিণী", DateOfBirth: "২০/১১/১৯৬৫", Address: "রোড ১২, মিরপুর", Gender: model.GenderFemale, WardNo: 1},
		{ID: "6", SerialNo: "৯", Name: "মোঃ করিম উদ্দিন", VoterNo: "৫৫১২৩৪৫৬৮৩", FatherName: "মোঃ রহিম উদ্দিন", MotherName: "আমেনা খাতুন", Occupation: "কৃষক", DateOfBirth: "unknown", Address: "কাজীপাড়া", Gender: model.GenderMale, WardNo: 1},
	}
}

func buildIndex(t *testing.T, records []model.Record, mutate func(s *config.SearchSettings)) *Index {
	t.Helper()
	settings := config.DefaultSearchSettings()
	if mutate != nil {
		mutate(&settings)
	}
	idx, err := Build(records, settings)
	require.NoError(t, err)
	return idx
}

func resultIDs(results []RankedResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Record.ID
	}
	return ids
}
