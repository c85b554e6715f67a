package insight

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/faizpoerwita/cuan-check/internal/format"
)

const footerRule = "──────────────────────────"

// DefaultAttribution is the footer credit line; overridable via config.
const DefaultAttribution = "Powered by Cuan Check AI"

// Normalizer turns the model's free-form prose into consistently formatted
// text plus the four named sections. Each stage is an independent
// string-to-string function applied in a fixed order.
type Normalizer struct {
	Sections    SectionConfig
	Attribution string

	// Now is injectable for deterministic footers in tests.
	Now func() time.Time
}

// Result is one normalization pass over a model response.
type Result struct {
	// Text is the cleaned flat text with the footer appended.
	Text string
	// Sections always contains the four canonical keys; missing ones carry
	// their placeholder. SectionText is set when no markers were found.
	Sections map[string]string
}

// NewNormalizer builds a normalizer with the default headings and footer.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Sections:    DefaultSections(),
		Attribution: DefaultAttribution,
		Now:         time.Now,
	}
}

// Normalize runs the full pipeline. It never fails: a response without the
// requested section markers degrades to a single text section plus
// placeholders rather than an error.
func (n *Normalizer) Normalize(raw string) Result {
	cleaned := raw
	for _, stage := range []func(string) string{
		stripMarkup,
		collapseCurrencyEcho,
		n.inferCurrency,
		normalizePercent,
		collapseRepeats,
		tidyWhitespace,
	} {
		cleaned = stage(cleaned)
	}

	sections := n.splitSections(cleaned)

	return Result{
		Text:     n.appendFooter(cleaned),
		Sections: sections,
	}
}

var (
	fenceOpenRe = regexp.MustCompile("```[a-z]*\n")
	fenceRe     = regexp.MustCompile("```")
	codeTagRe   = regexp.MustCompile(`\[/?code\]`)
	htmlTagRe   = regexp.MustCompile(`<[^>]+>`)
)

// stripMarkup removes fenced code delimiters, leftover [code] tags and
// HTML-like tags.
func stripMarkup(s string) string {
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceRe.ReplaceAllString(s, "")
	s = codeTagRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

var currencyEchoRe = regexp.MustCompile(`(Rp\s*\d[\d.,]*)\s+\d[\d.,]*`)

// collapseCurrencyEcho drops a bare number immediately repeating a formatted
// currency amount ("Rp 1.000.000 1000000" -> "Rp 1.000.000"). The model
// sometimes emits the value in both forms.
func collapseCurrencyEcho(s string) string {
	return currencyEchoRe.ReplaceAllString(s, "$1")
}

var bareIntRe = regexp.MustCompile(`\d{4,}`)

// inferCurrency re-renders free-standing integers of four or more digits as
// rupiah amounts. Four-digit values between 1900 and 2100 are treated as
// calendar years and left alone.
func (n *Normalizer) inferCurrency(s string) string {
	var b strings.Builder
	last := 0

	for _, loc := range bareIntRe.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		token := s[start:end]

		if !standaloneAt(s, start, end) || isYear(token) {
			continue
		}

		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}

		b.WriteString(s[last:start])
		b.WriteString(format.Currency(value))
		last = end
	}

	b.WriteString(s[last:])
	return b.String()
}

// standaloneAt reports whether the digit run is a free-standing number: not a
// fragment of a grouped or decimal number, not already a currency amount, and
// not a percentage.
func standaloneAt(s string, start, end int) bool {
	if start > 0 {
		prev := s[start-1]
		if prev >= '0' && prev <= '9' || prev == '.' || prev == ',' {
			return false
		}
	}
	if precededByCurrencyPrefix(s, start) {
		return false
	}

	rest := s[end:]
	if len(rest) > 0 {
		next := rest[0]
		if next >= '0' && next <= '9' {
			return false
		}
		// Part of a larger decimal or grouped number.
		if (next == '.' || next == ',') && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9' {
			return false
		}
	}

	trimmed := strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(trimmed, "%") {
		return false
	}

	return true
}

// precededByCurrencyPrefix reports whether the number already sits behind an
// "Rp" marker.
func precededByCurrencyPrefix(s string, start int) bool {
	i := start
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	head := strings.ToLower(s[:i])
	return strings.HasSuffix(head, "rp") || strings.HasSuffix(head, "rp.")
}

func isYear(token string) bool {
	if len(token) != 4 {
		return false
	}

	year, err := strconv.Atoi(token)
	if err != nil {
		return false
	}

	return year >= 1900 && year <= 2100
}

var (
	spacedPercentRe = regexp.MustCompile(`(\d+)\s*([.,])\s*(\d+)\s*%`)
	percentRe       = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
)

// normalizePercent reparses every percentage token and re-renders it with one
// decimal digit, a comma separator and no space before the sign.
func normalizePercent(s string) string {
	s = spacedPercentRe.ReplaceAllString(s, "$1$2$3%")

	return percentRe.ReplaceAllStringFunc(s, func(match string) string {
		digits := percentRe.FindStringSubmatch(match)[1]
		value, err := strconv.ParseFloat(strings.Replace(digits, ",", ".", 1), 64)
		if err != nil {
			return match
		}
		return format.Percentage(value)
	})
}

var numberPairRe = regexp.MustCompile(`((?:Rp )?\d[\d.,]*\d|\d)\s+((?:Rp )?\d[\d.,]*\d|\d)`)

// collapseRepeats removes an exact numeric or currency token repeated in
// immediate succession, including inside parenthesized asides. Applied to a
// fixpoint so triple echoes also collapse.
func collapseRepeats(s string) string {
	for {
		out := numberPairRe.ReplaceAllStringFunc(s, func(match string) string {
			parts := numberPairRe.FindStringSubmatch(match)
			if parts[1] == parts[2] {
				return parts[1]
			}
			return match
		})

		if out == s {
			return out
		}
		s = out
	}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

func tidyWhitespace(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, "\n\n"))
}

// splitSections cuts the cleaned text on the ### delimiter and maps each block
// to its canonical key. Every canonical key is always present in the result.
func (n *Normalizer) splitSections(cleaned string) map[string]string {
	sections := make(map[string]string, len(n.Sections.Placeholders)+1)
	for key, placeholder := range n.Sections.Placeholders {
		sections[key] = placeholder
	}

	if !strings.Contains(cleaned, "###") {
		sections[SectionText] = cleaned
		return sections
	}

	index := n.Sections.headingIndex()

	for _, block := range strings.Split(cleaned, "###") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		heading, body, _ := strings.Cut(block, "\n")
		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}

		key, ok := index[normalizeHeading(heading)]
		if !ok {
			// Unknown heading: keep the content reachable under its own key.
			key = normalizeHeading(heading)
		}
		sections[key] = body
	}

	return sections
}

// appendFooter adds the horizontal rule, the long-form Indonesian date and the
// attribution line. Cosmetic only.
func (n *Normalizer) appendFooter(text string) string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	attribution := n.Attribution
	if attribution == "" {
		attribution = DefaultAttribution
	}

	return text + "\n\n" + footerRule + "\n" + format.LongDate(now()) + "\n" + attribution
}
