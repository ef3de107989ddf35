package scrape

import "testing"

func TestDurationSeconds(t *testing.T) {
	cases := map[string]int64{
		"00:05:00": 300,
		"02:10:00": 7800,
		"05:00":    300,
		"00:00:01": 1,
	}
	for in, expected := range cases {
		if got := durationSeconds(in); got != expected {
			t.Fatalf("durationSeconds(%q): expected %d got %d", in, expected, got)
		}
	}
}

func TestDurationSecondsPlaceholdersSortLast(t *testing.T) {
	for _, in := range []string{"---", "", Unknown, "99", "a:b", "1:2:3:4"} {
		if got := durationSeconds(in); got != unknownDuration {
			t.Fatalf("durationSeconds(%q): expected max sentinel, got %d", in, got)
		}
	}
}
