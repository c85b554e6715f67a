package insight

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/faizpoerwita/cuan-check/internal/format"
)

// SegmentType tags one extracted run of text.
type SegmentType string

const (
	SegmentText       SegmentType = "text"
	SegmentCurrency   SegmentType = "currency"
	SegmentPercentage SegmentType = "percentage"
	SegmentNumber     SegmentType = "number"
	SegmentEmphasis   SegmentType = "emphasis"
)

// Segment is one typed slice of a normalized line, carrying both the original
// substring and its locale-formatted rendering. Ephemeral; produced and
// consumed within a single pass.
type Segment struct {
	Type      SegmentType `json:"type"`
	Original  string      `json:"original"`
	Formatted string      `json:"formatted"`
	Position  int         `json:"position"`
}

var (
	segmentCurrencyRe   = regexp.MustCompile(`Rp\s*\d+(?:\.\d{3})*(?:,\d+)?`)
	segmentPercentRe    = regexp.MustCompile(`\d+(?:[.,]\d+)?%`)
	segmentNumberRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	segmentEmphasisRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	segmentWhitespaceRe = regexp.MustCompile(`\s+`)
)

// Units that disqualify a bare number from standalone treatment.
var numberUnitSuffixes = []string{"%", "tahun", "bulan", "hari", "Rp"}

type segmentMatch struct {
	segment Segment
	end     int
}

// Segments splits text into typed runs for presentation: currency,
// percentage, plain number and emphasis tokens are re-rendered in id-ID
// format, everything else passes through as text. Duplicate values are
// extracted once.
func Segments(text string) []Segment {
	cleaned := cleanSegmentText(text)

	matches := collectMatches(cleaned)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].segment.Position < matches[j].segment.Position
	})

	segments := make([]Segment, 0, len(matches)*2+1)
	seen := make(map[string]bool, len(matches))
	cursor := 0

	for _, m := range matches {
		if m.segment.Position < cursor {
			continue
		}
		if seen[m.segment.Original] {
			continue
		}

		if m.segment.Position > cursor {
			segments = append(segments, Segment{
				Type:      SegmentText,
				Original:  cleaned[cursor:m.segment.Position],
				Formatted: cleaned[cursor:m.segment.Position],
				Position:  cursor,
			})
		}

		segments = append(segments, m.segment)
		seen[m.segment.Original] = true
		cursor = m.end
	}

	if cursor < len(cleaned) {
		segments = append(segments, Segment{
			Type:      SegmentText,
			Original:  cleaned[cursor:],
			Formatted: cleaned[cursor:],
			Position:  cursor,
		})
	}

	return segments
}

// cleanSegmentText collapses whitespace runs before token extraction.
func cleanSegmentText(text string) string {
	return strings.TrimSpace(segmentWhitespaceRe.ReplaceAllString(text, " "))
}

func collectMatches(cleaned string) []segmentMatch {
	var matches []segmentMatch

	for _, loc := range segmentCurrencyRe.FindAllStringIndex(cleaned, -1) {
		original := cleaned[loc[0]:loc[1]]
		matches = append(matches, segmentMatch{
			segment: Segment{
				Type:      SegmentCurrency,
				Original:  original,
				Formatted: format.Currency(parseIDNumber(original)),
				Position:  loc[0],
			},
			end: loc[1],
		})
	}

	for _, loc := range segmentPercentRe.FindAllStringIndex(cleaned, -1) {
		original := cleaned[loc[0]:loc[1]]
		matches = append(matches, segmentMatch{
			segment: Segment{
				Type:      SegmentPercentage,
				Original:  original,
				Formatted: format.Percentage(parsePercent(original)),
				Position:  loc[0],
			},
			end: loc[1],
		})
	}

	for _, loc := range segmentNumberRe.FindAllStringIndex(cleaned, -1) {
		if !plainNumberAt(cleaned, loc[0], loc[1]) {
			continue
		}

		original := cleaned[loc[0]:loc[1]]
		matches = append(matches, segmentMatch{
			segment: Segment{
				Type:      SegmentNumber,
				Original:  original,
				Formatted: format.Number(parseIDNumber(original)),
				Position:  loc[0],
			},
			end: loc[1],
		})
	}

	for _, loc := range segmentEmphasisRe.FindAllStringSubmatchIndex(cleaned, -1) {
		matches = append(matches, segmentMatch{
			segment: Segment{
				Type:      SegmentEmphasis,
				Original:  cleaned[loc[0]:loc[1]],
				Formatted: cleaned[loc[2]:loc[3]],
				Position:  loc[0],
			},
			end: loc[1],
		})
	}

	return matches
}

// plainNumberAt reports whether a digit run is a standalone number rather
// than part of a currency amount, a percentage or a value with a time unit.
func plainNumberAt(s string, start, end int) bool {
	if start > 0 {
		prev := s[start-1]
		if prev == '.' || prev == ',' || prev >= '0' && prev <= '9' {
			return false
		}
	}
	if precededByCurrencyPrefix(s, start) {
		return false
	}

	rest := strings.TrimLeft(s[end:], " ")
	for _, suffix := range numberUnitSuffixes {
		if strings.HasPrefix(rest, suffix) {
			return false
		}
	}

	// A comma-decimal tail means the run is a fragment of a larger value.
	if strings.HasPrefix(rest, ",") && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9' {
		return false
	}

	return true
}

// parseIDNumber reads an id-ID formatted number: '.' groups thousands, ','
// marks decimals.
func parseIDNumber(s string) float64 {
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ',':
			digits.WriteRune('.')
		}
	}

	value, _ := strconv.ParseFloat(digits.String(), 64)
	return value
}

func parsePercent(s string) float64 {
	s = strings.TrimSuffix(s, "%")
	s = strings.Replace(s, ",", ".", 1)

	value, _ := strconv.ParseFloat(s, 64)
	return value
}
