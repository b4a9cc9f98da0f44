package services

import (
	"reflect"
	"testing"

	"chipbook/models"
)

func iptr(v int64) *int64     { return &v }
func fptr(v float64) *float64 { return &v }

func TestPickMVP(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    int64 // user id, 0 means nil expected
	}{
		{
			name: "highest roi wins",
			records: []models.Record{
				{UserID: 1, ROI: fptr(50)},
				{UserID: 2, ROI: fptr(120)},
				{UserID: 3, ROI: fptr(-100)},
			},
			want: 2,
		},
		{
			name: "tie broken by lower user id",
			records: []models.Record{
				{UserID: 9, ROI: fptr(75)},
				{UserID: 4, ROI: fptr(75)},
			},
			want: 4,
		},
		{
			name: "records without roi are skipped",
			records: []models.Record{
				{UserID: 1},
				{UserID: 2, ROI: fptr(-20)},
			},
			want: 2,
		},
		{
			name:    "no roi at all",
			records: []models.Record{{UserID: 1}, {UserID: 2}},
			want:    0,
		},
		{
			name:    "empty game",
			records: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mvp := pickMVP(tt.records)
			if tt.want == 0 {
				if mvp != nil {
					t.Fatalf("got MVP %d, want none", mvp.UserID)
				}
				return
			}
			if mvp == nil {
				t.Fatalf("got no MVP, want %d", tt.want)
			}
			if mvp.UserID != tt.want {
				t.Fatalf("got MVP %d, want %d", mvp.UserID, tt.want)
			}
		})
	}
}

func TestPotOf(t *testing.T) {
	records := []models.Record{
		{UserID: 1, BuyIn: iptr(1000)},
		{UserID: 2, BuyIn: iptr(2500)},
		{UserID: 3}, // never bought in
	}
	if got := potOf(records); got != 3500 {
		t.Fatalf("pot = %d, want 3500", got)
	}
}

func TestBuildReport(t *testing.T) {
	game := &models.Game{Ratio: 2}
	game.ID = 7
	records := []models.Record{
		{UserID: 1, BuyIn: iptr(1000), BuyOut: iptr(3000), ROI: fptr(200)},
		{UserID: 2, BuyIn: iptr(2000), BuyOut: iptr(0), ROI: fptr(-100)},
	}
	mvp := &records[0]

	report := buildReport(game, records, "batch-1", 3000, mvp)

	if report.GameID != 7 || report.Pot != 3000 || report.Ratio != 2 || report.RefID != "batch-1" {
		t.Fatalf("header fields wrong: %+v", report)
	}
	if report.MvpID == nil || *report.MvpID != 1 {
		t.Fatalf("mvp = %v, want 1", report.MvpID)
	}
	if len(report.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(report.Players))
	}
	if report.Players[0].Net != 2000 || report.Players[1].Net != -2000 {
		t.Fatalf("nets wrong: %+v", report.Players)
	}
}

func TestUniqueGameIDs(t *testing.T) {
	got := uniqueGameIDs([]uint{3, 1, 3}, []uint{2, 1}, nil)
	if want := []uint{3, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
