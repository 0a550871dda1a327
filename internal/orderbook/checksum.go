package orderbook

import (
	"hash/crc32"
	"strconv"
	"strings"
)

const checksumDepth = 10

// computeChecksum computes the exchange's position-sensitive CRC32 over the
// top 10 asks (ascending) followed by the top 10 bids (descending). Each
// level contributes its canonical-digits price then canonical-digits
// quantity, concatenated in that order; all 20 (or fewer, if the book is
// thinner than 10 levels per side) pairs are concatenated before hashing.
func computeChecksum(bids, asks map[price]float64) uint32 {
	var b strings.Builder

	askKeys := sortedAscending(asks)
	if len(askKeys) > checksumDepth {
		askKeys = askKeys[:checksumDepth]
	}
	for _, p := range askKeys {
		b.WriteString(canonicalDigits(p))
		b.WriteString(canonicalDigits(asks[p]))
	}

	bidKeys := sortedDescending(bids)
	if len(bidKeys) > checksumDepth {
		bidKeys = bidKeys[:checksumDepth]
	}
	for _, p := range bidKeys {
		b.WriteString(canonicalDigits(p))
		b.WriteString(canonicalDigits(bids[p]))
	}

	return crc32.ChecksumIEEE([]byte(b.String()))
}

// canonicalDigits formats x with 10 fractional digits, removes the decimal
// point, strips leading zeros (falling back to "0" if nothing remains),
// then strips trailing zeros — producing the minimal digit string for the
// value's significand. Examples: 0 -> "0", 50000.0 -> "5",
// 0.001234 -> "1234", 123.456 -> "123456".
func canonicalDigits(x float64) string {
	formatted := strconv.FormatFloat(x, 'f', 10, 64)
	formatted = strings.Replace(formatted, ".", "", 1)
	formatted = strings.Replace(formatted, "-", "", 1)

	formatted = strings.TrimLeft(formatted, "0")
	if formatted == "" {
		return "0"
	}

	trimmed := strings.TrimRight(formatted, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
