package jobs

import (
	"testing"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/unitedstates"
)

func rawEntry() unitedstates.RawLegislator {
	var raw unitedstates.RawLegislator
	raw.ID.Bioguide = "B000944"
	raw.Name.First = "Sherrod"
	raw.Name.Last = "Brown"
	raw.Bio.Birthday = "1952-11-09"
	raw.Bio.Gender = "M"
	district := 13
	raw.Terms = []unitedstates.RawTerm{
		{Type: "rep", Start: "1993-01-05", End: "1995-01-03", State: "OH", District: &district, Party: "Democrat"},
		{Type: "sen", Start: "2019-01-03", End: "2025-01-03", State: "OH", Party: "Democrat", URL: "https://brown.senate.gov"},
	}
	return raw
}

func TestParseLegislator_UsesMostRecentTerm(t *testing.T) {
	legislator, ok := parseLegislator(rawEntry())
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if legislator.Chamber != "Senate" {
		t.Fatalf("expected Senate from latest term, got %q", legislator.Chamber)
	}
	if legislator.Party != "Democrat" || legislator.State != "OH" {
		t.Fatalf("unexpected party/state %q/%q", legislator.Party, legislator.State)
	}
	if legislator.District != nil {
		t.Fatalf("senate term must leave district nil, got %v", *legislator.District)
	}
	if legislator.OfficialWebsiteURL != "https://brown.senate.gov" {
		t.Fatalf("unexpected website %q", legislator.OfficialWebsiteURL)
	}
}

func TestParseLegislator_DerivedFields(t *testing.T) {
	legislator, ok := parseLegislator(rawEntry())
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if legislator.FullName != "Sherrod Brown" {
		t.Fatalf("unexpected full name %q", legislator.FullName)
	}
	if legislator.BioSnapshot != "1952-11-09 – M" {
		t.Fatalf("unexpected bio snapshot %q", legislator.BioSnapshot)
	}
	want := "https://theunitedstates.io/images/congress/450x550/B000944.jpg"
	if legislator.PortraitURL != want {
		t.Fatalf("unexpected portrait url %q", legislator.PortraitURL)
	}
	if legislator.IcpsrID != nil {
		t.Fatalf("zero icpsr must map to nil, got %v", *legislator.IcpsrID)
	}
}

func TestParseLegislator_HouseTermKeepsDistrict(t *testing.T) {
	raw := rawEntry()
	raw.Terms = raw.Terms[:1]
	legislator, ok := parseLegislator(raw)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if legislator.Chamber != "House" {
		t.Fatalf("expected House, got %q", legislator.Chamber)
	}
	if legislator.District == nil || *legislator.District != 13 {
		t.Fatalf("expected district 13, got %v", legislator.District)
	}
}

func TestValidTermRange(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"open ended", "2019-01-03", "", true},
		{"end after start", "2019-01-03", "2025-01-03", true},
		{"end equals start", "2019-01-03", "2019-01-03", false},
		{"end before start", "2019-01-03", "2017-01-03", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			term := unitedstates.RawTerm{Start: tc.start, End: tc.end}
			if got := validTermRange(term); got != tc.want {
				t.Fatalf("validTermRange(start=%q, end=%q) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestParseLegislator_SkipsUnusableEntries(t *testing.T) {
	noID := rawEntry()
	noID.ID.Bioguide = ""
	if _, ok := parseLegislator(noID); ok {
		t.Fatalf("entry without bioguide id must be skipped")
	}

	noTerms := rawEntry()
	noTerms.Terms = nil
	if _, ok := parseLegislator(noTerms); ok {
		t.Fatalf("entry without terms must be skipped")
	}

	noStart := rawEntry()
	for i := range noStart.Terms {
		noStart.Terms[i].Start = ""
	}
	if _, ok := parseLegislator(noStart); ok {
		t.Fatalf("entry with only undated terms must be skipped")
	}

	badType := rawEntry()
	for i := range badType.Terms {
		badType.Terms[i].Type = "del"
	}
	if _, ok := parseLegislator(badType); ok {
		t.Fatalf("unknown term type must be skipped")
	}
}
