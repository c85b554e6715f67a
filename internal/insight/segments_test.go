package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmentsOfType(segments []Segment, typ SegmentType) []Segment {
	var out []Segment
	for _, s := range segments {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

func TestSegmentsCurrency(t *testing.T) {
	segments := Segments("Sisihkan Rp 1.000.000 setiap bulan.")

	currency := segmentsOfType(segments, SegmentCurrency)
	require.Len(t, currency, 1)
	assert.Equal(t, "Rp 1.000.000", currency[0].Original)
	assert.Equal(t, "Rp 1.000.000", currency[0].Formatted)
}

func TestSegmentsPercentage(t *testing.T) {
	segments := Segments("Rasio tabungan 12,3456% dari pendapatan.")

	percentages := segmentsOfType(segments, SegmentPercentage)
	require.Len(t, percentages, 1)
	assert.Equal(t, "12,3456%", percentages[0].Original)
	assert.Equal(t, "12,3%", percentages[0].Formatted)
}

func TestSegmentsEmphasis(t *testing.T) {
	segments := Segments("Ini **sangat penting** untuk dicatat.")

	emphasis := segmentsOfType(segments, SegmentEmphasis)
	require.Len(t, emphasis, 1)
	assert.Equal(t, "**sangat penting**", emphasis[0].Original)
	assert.Equal(t, "sangat penting", emphasis[0].Formatted)
}

func TestSegmentsSkipsUnitNumbers(t *testing.T) {
	segments := Segments("dalam 5 tahun dan 3 bulan")

	assert.Empty(t, segmentsOfType(segments, SegmentNumber))
}

func TestSegmentsPlainNumber(t *testing.T) {
	segments := Segments("terdapat 12500 transaksi")

	numbers := segmentsOfType(segments, SegmentNumber)
	require.Len(t, numbers, 1)
	assert.Equal(t, "12500", numbers[0].Original)
	assert.Equal(t, "12.500", numbers[0].Formatted)
}

func TestSegmentsDeduplicates(t *testing.T) {
	segments := Segments("Rp 500.000 lalu Rp 500.000 lagi")

	assert.Len(t, segmentsOfType(segments, SegmentCurrency), 1)
}

func TestSegmentsPreservesOrderAndText(t *testing.T) {
	segments := Segments("Tabungan Rp 360.000 atau 7,2% dari gaji.")

	require.GreaterOrEqual(t, len(segments), 4)
	assert.Equal(t, SegmentText, segments[0].Type)

	var rebuilt string
	for _, s := range segments {
		rebuilt += s.Original
	}
	assert.Equal(t, "Tabungan Rp 360.000 atau 7,2% dari gaji.", rebuilt)
}
