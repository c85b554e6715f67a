package insight

import (
	"fmt"
	"strings"

	"github.com/faizpoerwita/cuan-check/internal/format"
	"github.com/faizpoerwita/cuan-check/internal/models"
)

// BuildPrompt assembles the Indonesian system prompt: every figure already in
// id-ID format, plus the four section headings the normalizer expects back.
func (n *Normalizer) BuildPrompt(snapshot models.Snapshot, profile models.Profile) string {
	var b strings.Builder

	b.WriteString("Anda adalah asisten keuangan AI yang menganalisis data berikut:\n\n")

	topCategory := "Tidak ada data"
	topShare := 0.0
	if len(snapshot.Breakdown) > 0 {
		topCategory = snapshot.Breakdown[0].Category
		topShare = snapshot.Breakdown[0].Percentage
	}

	b.WriteString("[DATA KEUANGAN]\n")
	fmt.Fprintf(&b, "• Pendapatan Bulanan: %s\n", format.Currency(snapshot.MonthlyIncome))
	fmt.Fprintf(&b, "• Total Pengeluaran: %s\n", format.Currency(snapshot.TotalExpenses))
	fmt.Fprintf(&b, "• Tabungan Bulanan: %s\n", format.Currency(snapshot.MonthlySavings))
	fmt.Fprintf(&b, "• Rasio Tabungan: %s\n", format.Percentage(snapshot.SavingsRatio))
	fmt.Fprintf(&b, "• Skor Kesehatan Keuangan: %d/100\n", snapshot.HealthScore)
	fmt.Fprintf(&b, "• Kategori Pengeluaran Terbesar: %s (%s)\n", topCategory, format.Percentage(topShare))

	if len(snapshot.Breakdown) > 0 {
		b.WriteString("\n[RINCIAN PENGELUARAN]\n")
		for _, share := range snapshot.Breakdown {
			fmt.Fprintf(&b, "• %s: %s\n", share.Category, format.Currency(share.Amount))
		}
	}

	if profile.Target1Year > 0 || profile.Target2Year > 0 {
		b.WriteString("\n[TARGET KEUANGAN]\n")
		fmt.Fprintf(&b, "• Target 1 Tahun: %s\n", format.Currency(profile.Target1Year))
		fmt.Fprintf(&b, "• Target 2 Tahun: %s\n", format.Currency(profile.Target2Year))
	}

	if profile.CurrentAge > 0 && profile.RetirementAge > profile.CurrentAge {
		b.WriteString("\n[INFORMASI TAMBAHAN]\n")
		fmt.Fprintf(&b, "• Usia: %d tahun\n", profile.CurrentAge)
		fmt.Fprintf(&b, "• Target Usia Pensiun: %d tahun\n", profile.RetirementAge)
		fmt.Fprintf(&b, "• Waktu ke Pensiun: %d tahun\n", profile.RetirementAge-profile.CurrentAge)
	}

	b.WriteString("\nBerikan analisis dalam format berikut (gunakan ### sebagai pemisah setiap bagian):\n")

	instructions := map[string]string{
		SectionPriority:        "[berikan prioritas utama yang harus dilakukan berdasarkan kondisi keuangan saat ini]",
		SectionHealthAnalysis:  "[berikan analisis mendalam tentang kesehatan keuangan, termasuk kekuatan dan kelemahan]",
		SectionRecommendations: "[berikan minimal 3 rekomendasi spesifik dan terukur untuk perbaikan]",
		SectionNextSteps:       "[berikan langkah-langkah konkret yang harus diambil dalam 30 hari ke depan]",
	}

	for _, key := range n.Sections.Keys() {
		fmt.Fprintf(&b, "\n### %s\n%s\n", n.Sections.Headings[key], instructions[key])
	}

	b.WriteString("\nBerikan analisis yang praktis dan dapat diterapkan langsung.")

	return b.String()
}
