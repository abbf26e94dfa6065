package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidmahamud/voter-info-web/internal/dataset"
	apperrors "github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func record(ward int, gender model.Gender, serial, name, occupation, dob string) model.Record {
	return model.Record{
		ID:          fmt.Sprintf("%d-%s-%s", ward, gender, serial),
		SerialNo:    serial,
		Name:        name,
		VoterNo:     fmt.Sprintf("55%d0%s", ward, serial),
		Occupation:  occupation,
		DateOfBirth: dob,
		Gender:      gender,
		WardNo:      ward,
	}
}

func testDataset() *model.Dataset {
	return &model.Dataset{Wards: []model.Ward{
		{
			WardNo:   2,
			WardName: "Dakkhin Para",
			Male: []model.Record{
				record(2, model.GenderMale, "1", "Karim Mia", "Farmer", "10/10/1990"),
			},
		},
		{
			WardNo:   1,
			WardName: "Uttar Para",
			Female: []model.Record{
				record(1, model.GenderFemale, "1", "Rahima Khatun", "Housewife", "01/02/1980"),
			},
			Male: []model.Record{
				record(1, model.GenderMale, "2", "Abdul Karim", "Farmer", "12/05/1975"),
				record(1, model.GenderMale, "3", "Abdul Halim", "Teacher", "03/03/2000"),
			},
		},
	}}
}

func newTestDirectory(t *testing.T, ds *model.Dataset) *Directory {
	t.Helper()
	d, err := FromDataset(context.Background(), ds, Config{Now: fixedNow}, nil)
	require.NoError(t, err)
	return d
}

func TestDirectory_ListWards(t *testing.T) {
	d := newTestDirectory(t, testDataset())

	wards := d.ListWards()
	require.Len(t, wards, 2)
	assert.Equal(t, model.WardSummary{WardNo: 1, WardName: "Uttar Para", Total: 3, Female: 1, Male: 2}, wards[0])
	assert.Equal(t, model.WardSummary{WardNo: 2, WardName: "Dakkhin Para", Total: 1, Female: 0, Male: 1}, wards[1])

	total := d.Total()
	assert.Equal(t, 4, total.Total)
	assert.Equal(t, 1, total.Female)
	assert.Equal(t, 3, total.Male)
	assert.Equal(t, AllWardsName, total.WardName)
	assert.False(t, d.LoadedAt().IsZero())
}

func TestDirectory_Ward(t *testing.T) {
	d := newTestDirectory(t, testDataset())

	tests := []struct {
		key     string
		total   int
		wardNo  int
		wantErr bool
	}{
		{key: "1", total: 3, wardNo: 1},
		{key: "১", total: 3, wardNo: 1},
		{key: " 2 ", total: 1, wardNo: 2},
		{key: "all", total: 4},
		{key: "ALL", total: 4},
		{key: "9", wantErr: true},
		{key: "north", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			w, err := d.Ward(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrWardNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.total, w.Summary().Total)
			assert.Equal(t, tt.wardNo, w.Summary().WardNo)
			assert.Len(t, w.Records(), tt.total)
		})
	}
}

func TestDirectory_WardSearch(t *testing.T) {
	d := newTestDirectory(t, testDataset())

	ward, err := d.Ward("1")
	require.NoError(t, err)
	result, err := ward.Search(services.SearchQuery{QueryString: "Abdul Karim"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "1-male-2", result.Hits[0].Record.ID)

	all, err := d.Ward(model.AllWards)
	require.NoError(t, err)
	result, err = all.Search(services.SearchQuery{QueryString: "Karim"})
	require.NoError(t, err)
	ids := make([]string, 0, len(result.Hits))
	for _, h := range result.Hits {
		ids = append(ids, h.Record.ID)
	}
	assert.Contains(t, ids, "2-male-1", "the all-wards index spans every ward")
	assert.Contains(t, ids, "1-male-2")
}

func TestDirectory_StatsAndOccupations(t *testing.T) {
	d := newTestDirectory(t, testDataset())

	w, err := d.Ward("1")
	require.NoError(t, err)

	st := w.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Female)
	assert.Equal(t, 2, st.Male)
	assert.Equal(t, 1975, st.MinBirthYear)
	assert.Equal(t, 2000, st.MaxBirthYear)

	occupations := w.Occupations()
	require.Len(t, occupations, 3)
	assert.Equal(t, st.Occupations, occupations)
}

func TestDirectory_ReloadSwapsSnapshot(t *testing.T) {
	var calls atomic.Int32
	loader := func() (*model.Dataset, error) {
		ds := testDataset()
		if calls.Add(1) > 1 {
			ds.Wards = append(ds.Wards, model.Ward{
				WardNo: 3,
				Male:   []model.Record{record(3, model.GenderMale, "1", "Jamal", "Driver", "")},
			})
		}
		return ds, nil
	}

	d, err := New(context.Background(), Config{Loader: loader, Now: fixedNow}, nil)
	require.NoError(t, err)

	before, err := d.Ward("1")
	require.NoError(t, err)

	require.NoError(t, d.Reload(context.Background()))
	assert.Len(t, d.ListWards(), 3)
	_, err = d.Ward("3")
	require.NoError(t, err)

	// accessors from the previous snapshot keep working
	result, err := before.Search(services.SearchQuery{QueryString: "Rahima"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Hits)
}

func TestDirectory_FailedReloadKeepsPrevious(t *testing.T) {
	var fail atomic.Bool
	loader := func() (*model.Dataset, error) {
		if fail.Load() {
			return nil, apperrors.NewDatasetError("voters.json", fmt.Errorf("unexpected end of JSON input"))
		}
		return testDataset(), nil
	}

	d, err := New(context.Background(), Config{Loader: loader, Now: fixedNow}, nil)
	require.NoError(t, err)
	loadedAt := d.LoadedAt()

	fail.Store(true)
	err = d.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDataset)

	assert.Len(t, d.ListWards(), 2)
	assert.Equal(t, loadedAt, d.LoadedAt())
}

func TestDirectory_InvalidRecords(t *testing.T) {
	ds := testDataset()
	ds.Wards[1].Male = append(ds.Wards[1].Male, ds.Wards[1].Male[0])

	_, err := FromDataset(context.Background(), ds, Config{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRecord)
}

func TestDirectory_EmptyDataset(t *testing.T) {
	d := newTestDirectory(t, &model.Dataset{})

	assert.Empty(t, d.ListWards())
	all, err := d.Ward(model.AllWards)
	require.NoError(t, err)
	result, err := all.Search(services.SearchQuery{QueryString: "Karim"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	require.Error(t, err)

	_, err = FromDataset(context.Background(), nil, Config{}, nil)
	require.Error(t, err)
}

func TestNew_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voters.json")
	require.NoError(t, dataset.Save(path, testDataset()))

	d, err := New(context.Background(), Config{Path: path, Now: fixedNow}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Total().Total)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), Config{Path: filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirectory_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voters.json")
	require.NoError(t, dataset.Save(path, testDataset()))

	d, err := New(context.Background(), Config{Path: path, Now: fixedNow}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx, 20*time.Millisecond) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)

	updated := testDataset()
	updated.Wards = updated.Wards[:1]
	require.NoError(t, dataset.Save(path, updated))

	require.Eventually(t, func() bool {
		return len(d.ListWards()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	// a broken file keeps the data in service
	require.NoError(t, os.WriteFile(path, []byte(`{"wards": [`), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, d.ListWards(), 1)
}

func TestWatch_RequiresPath(t *testing.T) {
	d := newTestDirectory(t, testDataset())
	assert.Error(t, d.Watch(context.Background(), 0))
}
