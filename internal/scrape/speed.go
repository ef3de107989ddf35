package scrape

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rateRE = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([kKmMgG]?)([bB])(?:ps|/s)?`)

// ParseRate parses a rate string with an SI-prefixed bit/byte unit into
// Mbps rounded to two decimals. Prefixes are decimal (1000-based), bytes
// convert at 8 bits. Unparseable input yields 0.
func ParseRate(input string) float64 {
	input = Dedup(strings.TrimSpace(input))
	match := rateRE.FindStringSubmatch(input)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	bits := value * siFactor(match[2])
	if match[3] == "B" {
		bits *= 8
	}
	return round2(bits / 1e6)
}

func siFactor(prefix string) float64 {
	switch strings.ToLower(prefix) {
	case "k":
		return 1e3
	case "m":
		return 1e6
	case "g":
		return 1e9
	}
	return 1
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
