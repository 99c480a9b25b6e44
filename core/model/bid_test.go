package model

import "testing"

func TestBidValidate(t *testing.T) {
	bid := YearlyBid{
		UtilityID:        "u1",
		PlantID:          "p1",
		Year:             2026,
		OffPeakQuantity:  80,
		ShoulderQuantity: 100,
		PeakQuantity:     100,
		OffPeakPrice:     22,
		ShoulderPrice:    35,
		PeakPrice:        60,
	}
	if err := bid.Validate(); err != nil {
		t.Fatalf("valid bid rejected: %v", err)
	}

	bad := bid
	bad.PeakPrice = 0
	if err := bad.Validate(); err == nil {
		t.Errorf("zero price not detected")
	}
	bad = bid
	bad.ShoulderQuantity = -5
	if err := bad.Validate(); err == nil {
		t.Errorf("negative quantity not detected")
	}
	bad = bid
	bad.PlantID = ""
	if err := bad.Validate(); err == nil {
		t.Errorf("missing plant not detected")
	}
	bad = bid
	bad.Year = 0
	if err := bad.Validate(); err == nil {
		t.Errorf("missing year not detected")
	}
}

func TestPeriodHours(t *testing.T) {
	total := 0
	for _, p := range Periods() {
		total += p.Hours()
	}
	if total != 8760 {
		t.Fatalf("period hours sum to %d, want 8760", total)
	}
}
