package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	n := NewNormalizer()
	n.Now = func() time.Time {
		return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	}
	return n
}

func TestStripMarkup(t *testing.T) {
	in := "```json\n{\"x\":1}\n```\n[code]abc[/code] <b>tebal</b> sisa"
	out := stripMarkup(in)

	assert.NotContains(t, out, "```")
	assert.NotContains(t, out, "[code]")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "tebal")
	assert.Contains(t, out, "sisa")
}

func TestCollapseCurrencyEcho(t *testing.T) {
	assert.Equal(t, "Rp 1.000.000", collapseCurrencyEcho("Rp 1.000.000 1000000"))
	assert.Equal(t, "tabung Rp 500.000 per bulan", collapseCurrencyEcho("tabung Rp 500.000 500000 per bulan"))
	// No bare echo, nothing to collapse.
	assert.Equal(t, "Rp 500.000 dan lainnya", collapseCurrencyEcho("Rp 500.000 dan lainnya"))
}

func TestInferCurrency(t *testing.T) {
	n := testNormalizer()

	assert.Equal(t, "sisihkan Rp 20.000 per hari", n.inferCurrency("sisihkan 20000 per hari"))
	assert.Equal(t, "target Rp 1.500.000 terkumpul", n.inferCurrency("target 1500000 terkumpul"))

	// Years stay years.
	assert.Equal(t, "pada tahun 2024", n.inferCurrency("pada tahun 2024"))
	assert.Equal(t, "sejak 1900 hingga 2100", n.inferCurrency("sejak 1900 hingga 2100"))
	// Five digits is never a year.
	assert.Equal(t, "Rp 20.000", n.inferCurrency("20000"))
	// Outside the calendar window a four-digit value is money.
	assert.Equal(t, "Rp 2.500", n.inferCurrency("2500"))

	// Already-formatted amounts and percentages are untouched.
	assert.Equal(t, "Rp 20000", n.inferCurrency("Rp 20000"))
	assert.Equal(t, "naik 2024%", n.inferCurrency("naik 2024%"))
	assert.Equal(t, "sekitar 12.3456% dahulu", n.inferCurrency("sekitar 12.3456% dahulu"))
}

func TestNormalizePercent(t *testing.T) {
	assert.Equal(t, "12,3%", normalizePercent("12.3456%"))
	assert.Equal(t, "7,2%", normalizePercent("7,2%"))
	assert.Equal(t, "45,0%", normalizePercent("45%"))
	assert.Equal(t, "rasio 12,3% tercapai", normalizePercent("rasio 12 , 3 % tercapai"))
	assert.Equal(t, "10,0% dan 20,5%", normalizePercent("10 % dan 20.5%"))
}

func TestCollapseRepeats(t *testing.T) {
	assert.Equal(t, "sebesar 360.000 per bulan", collapseRepeats("sebesar 360.000 360.000 per bulan"))
	assert.Equal(t, "(sekitar 78,4 persen)", collapseRepeats("(sekitar 78,4 78,4 persen)"))
	// Triple echo collapses fully.
	assert.Equal(t, "nilai 5", collapseRepeats("nilai 5 5 5"))
	// Distinct numbers survive.
	assert.Equal(t, "dari 100 menjadi 200", collapseRepeats("dari 100 menjadi 200"))
	// Repeated currency tokens collapse too.
	assert.Equal(t, "Rp 3.640.000", collapseRepeats("Rp 3.640.000 Rp 3.640.000"))
	// Trailing punctuation belongs to the sentence, not the token.
	assert.Equal(t, "tahun 2024, lalu", collapseRepeats("tahun 2024 2024, lalu"))
}

func TestNormalizeSections(t *testing.T) {
	n := testNormalizer()

	raw := strings.Join([]string{
		"### Prioritas Utama",
		"Tambah tabungan hingga 20%.",
		"",
		"### Analisis Kesehatan Keuangan",
		"Pengeluaran makan 3640000 3640000 terlalu besar.",
		"",
		"### Rekomendasi Spesifik",
		"Kurangi biaya makan Rp 1.000.000 1000000 per bulan.",
		"",
		"### Langkah Selanjutnya",
		"Mulai mencatat pengeluaran harian.",
	}, "\n")

	result := n.Normalize(raw)

	for _, key := range n.Sections.Keys() {
		require.Contains(t, result.Sections, key)
		assert.NotEmpty(t, result.Sections[key])
	}

	assert.Equal(t, "Tambah tabungan hingga 20,0%.", result.Sections[SectionPriority])
	assert.Equal(t, "Kurangi biaya makan Rp 1.000.000 per bulan.", result.Sections[SectionRecommendations])
	assert.Equal(t, "Pengeluaran makan Rp 3.640.000 terlalu besar.", result.Sections[SectionHealthAnalysis])
	assert.NotContains(t, result.Sections, SectionText)
}

func TestNormalizeWithoutSections(t *testing.T) {
	n := testNormalizer()

	result := n.Normalize("Keuangan Anda cukup sehat secara umum.")

	assert.Equal(t, "Keuangan Anda cukup sehat secara umum.", result.Sections[SectionText])
	for _, key := range n.Sections.Keys() {
		assert.Equal(t, n.Sections.Placeholders[key], result.Sections[key])
	}
}

func TestNormalizeMissingSectionGetsPlaceholder(t *testing.T) {
	n := testNormalizer()

	result := n.Normalize("### Prioritas Utama\nFokus menabung dulu.")

	assert.Equal(t, "Fokus menabung dulu.", result.Sections[SectionPriority])
	assert.Equal(t, n.Sections.Placeholders[SectionNextSteps], result.Sections[SectionNextSteps])
	assert.Equal(t, n.Sections.Placeholders[SectionHealthAnalysis], result.Sections[SectionHealthAnalysis])
	assert.Equal(t, n.Sections.Placeholders[SectionRecommendations], result.Sections[SectionRecommendations])
}

func TestNormalizeFooter(t *testing.T) {
	n := testNormalizer()

	result := n.Normalize("Analisis singkat.")

	assert.True(t, strings.HasSuffix(result.Text, footerRule+"\nSenin, 31 Agustus 2026\nPowered by Cuan Check AI"),
		"unexpected footer: %q", result.Text)
}

func TestNormalizeCustomHeadings(t *testing.T) {
	n := testNormalizer()
	n.Sections.Headings[SectionPriority] = "Main Priority"

	result := n.Normalize("### Main Priority\nSave more.")

	assert.Equal(t, "Save more.", result.Sections[SectionPriority])
}

func TestNormalizeUnknownHeadingKept(t *testing.T) {
	n := testNormalizer()

	result := n.Normalize("### Catatan Tambahan\nIsi bebas.\n\n### Prioritas Utama\nMenabung.")

	assert.Equal(t, "Isi bebas.", result.Sections["catatantambahan"])
	assert.Equal(t, "Menabung.", result.Sections[SectionPriority])
}
