package orderbook

import "testing"

func TestCanonicalDigits(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{50000.0, "5"},
		{0.001234, "1234"},
		{123.456, "123456"},
	}

	for _, tc := range cases {
		if got := canonicalDigits(tc.in); got != tc.want {
			t.Errorf("canonicalDigits(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestComputeChecksum_DeterministicForSameBook(t *testing.T) {
	bids := map[price]float64{100: 1, 99: 2}
	asks := map[price]float64{101: 1, 102: 2}

	c1 := computeChecksum(bids, asks)
	c2 := computeChecksum(bids, asks)
	if c1 != c2 {
		t.Fatalf("checksum not deterministic: %d != %d", c1, c2)
	}
}

func TestComputeChecksum_ChangesWithLevelChange(t *testing.T) {
	bids := map[price]float64{100: 1}
	asks := map[price]float64{101: 1}

	before := computeChecksum(bids, asks)
	bids[100] = 2
	after := computeChecksum(bids, asks)

	if before == after {
		t.Fatal("checksum did not change when quantity changed")
	}
}

func TestComputeChecksum_TruncatesToTopTenPerSide(t *testing.T) {
	bids := make(map[price]float64, 15)
	for i := 0; i < 15; i++ {
		bids[price(100-i)] = 1
	}
	asks := map[price]float64{200: 1}

	withExtra := computeChecksum(bids, asks)

	truncated := make(map[price]float64, 10)
	for i := 0; i < 10; i++ {
		truncated[price(100-i)] = 1
	}
	withoutExtra := computeChecksum(truncated, asks)

	if withExtra != withoutExtra {
		t.Fatal("checksum should ignore bid levels beyond depth 10")
	}
}
