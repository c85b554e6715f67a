package insight

import "strings"

// Canonical section keys produced by the normalizer.
const (
	SectionPriority        = "prioritasUtama"
	SectionHealthAnalysis  = "analisisKesehatan"
	SectionRecommendations = "rekomendasiSpesifik"
	SectionNextSteps       = "langkahSelanjutnya"

	// SectionText holds the whole cleaned body when the model ignored the
	// requested section markers.
	SectionText = "text"
)

// SectionConfig maps canonical keys to the heading text the model is asked to
// emit. Kept as data so the headings can be re-phrased or localized without
// touching the parser.
type SectionConfig struct {
	Headings     map[string]string
	Placeholders map[string]string
}

// DefaultSections returns the Indonesian headings the prompt requests and the
// placeholder used when the model omits a section.
func DefaultSections() SectionConfig {
	return SectionConfig{
		Headings: map[string]string{
			SectionPriority:        "Prioritas Utama",
			SectionHealthAnalysis:  "Analisis Kesehatan Keuangan",
			SectionRecommendations: "Rekomendasi Spesifik",
			SectionNextSteps:       "Langkah Selanjutnya",
		},
		Placeholders: map[string]string{
			SectionPriority:        "Belum ada prioritas yang ditetapkan.",
			SectionHealthAnalysis:  "Belum ada analisis kesehatan keuangan.",
			SectionRecommendations: "Belum ada rekomendasi spesifik.",
			SectionNextSteps:       "Belum ada langkah selanjutnya yang ditetapkan.",
		},
	}
}

// Keys returns the canonical keys in presentation order.
func (c SectionConfig) Keys() []string {
	return []string{SectionPriority, SectionHealthAnalysis, SectionRecommendations, SectionNextSteps}
}

// headingIndex maps a normalized heading line back to its canonical key.
func (c SectionConfig) headingIndex() map[string]string {
	index := make(map[string]string, len(c.Headings))
	for key, heading := range c.Headings {
		index[normalizeHeading(heading)] = key
	}
	return index
}

// normalizeHeading lower-cases a heading and strips all whitespace, so minor
// model drift in spacing or casing still resolves to the right key.
func normalizeHeading(heading string) string {
	return strings.Join(strings.Fields(strings.ToLower(heading)), "")
}
