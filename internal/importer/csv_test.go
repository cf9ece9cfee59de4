package importer_test

import (
	"strings"
	"testing"

	"vrpls/internal/importer"
)

func TestCSVAdapterParsesFullRow(t *testing.T) {
	csv := "id,lat,lng,amount,skills,serviceSec,windowEarliest,windowLatest\n" +
		"1,40.7,-74.0,10;2,cold;liftgate,300,0,3600\n"
	recs, err := importer.CSVAdapter{}.FetchJobs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Job.ID != 1 {
		t.Fatalf("ID = %d, want 1", r.Job.ID)
	}
	if r.Lat != 40.7 || r.Lng != -74.0 {
		t.Fatalf("Lat/Lng = %v/%v, want 40.7/-74.0", r.Lat, r.Lng)
	}
	if len(r.Job.Amount) != 2 || r.Job.Amount[0] != 10 || r.Job.Amount[1] != 2 {
		t.Fatalf("Amount = %v", r.Job.Amount)
	}
	if len(r.Job.Skills) != 2 || r.Job.Skills[0] != "cold" || r.Job.Skills[1] != "liftgate" {
		t.Fatalf("Skills = %v", r.Job.Skills)
	}
	if r.Job.ServiceSec != 300 {
		t.Fatalf("ServiceSec = %d, want 300", r.Job.ServiceSec)
	}
	if len(r.Job.TimeWindows) != 1 || r.Job.TimeWindows[0].Earliest != 0 || r.Job.TimeWindows[0].Latest != 3600 {
		t.Fatalf("TimeWindows = %v", r.Job.TimeWindows)
	}
}

func TestCSVAdapterMinimalColumns(t *testing.T) {
	csv := "id,lat,lng,amount\n2,1.0,2.0,5\n"
	recs, err := importer.CSVAdapter{}.FetchJobs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	if len(recs) != 1 || recs[0].Job.ID != 2 {
		t.Fatalf("recs = %+v", recs)
	}
	if len(recs[0].Job.TimeWindows) != 0 {
		t.Fatalf("TimeWindows = %v, want none", recs[0].Job.TimeWindows)
	}
}

func TestCSVAdapterEmptyInputReturnsNoRows(t *testing.T) {
	recs, err := importer.CSVAdapter{}.FetchJobs(strings.NewReader(""))
	if err != nil {
		t.Fatalf("FetchJobs: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("recs = %+v, want none", recs)
	}
}

func TestCSVAdapterMissingRequiredColumnErrors(t *testing.T) {
	csv := "id,lat,amount\n1,1.0,5\n"
	_, err := importer.CSVAdapter{}.FetchJobs(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing lng column")
	}
}

func TestCSVAdapterBadAmountErrors(t *testing.T) {
	csv := "id,lat,lng,amount\n1,1.0,2.0,notanumber\n"
	_, err := importer.CSVAdapter{}.FetchJobs(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for unparsable amount")
	}
}
