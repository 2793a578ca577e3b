package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(rows int) Table {
	t := Table{
		Title:    "Inventory Report",
		Subtitle: "Apartment: Casa Verde",
		Header:   []string{"Item", "Quantity", "Min", "Unit", "Status"},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("Caffè %d", i), "0", "2", "pz", "MISSING"})
	}
	return t
}

func TestCSV(t *testing.T) {
	table := sampleTable(2)
	table.Rows = append(table.Rows, []string{"Sapone, liquido", "3", "1", "\"flacone\"", "OK"})

	data, err := CSV(table)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, table.Header, records[0])
	assert.Equal(t, "Caffè 0", records[1][0])
	assert.Equal(t, "Sapone, liquido", records[3][0], "逗号需要转义")
	assert.Equal(t, "\"flacone\"", records[3][3])
}

func TestPDF(t *testing.T) {
	t.Run("多页", func(t *testing.T) {
		small, err := PDF(sampleTable(2))
		require.NoError(t, err)
		data, err := PDF(sampleTable(80))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		assert.Greater(t, len(data), len(small))
	})

	t.Run("空表", func(t *testing.T) {
		data, err := PDF(Table{Title: "Vuoto", Header: []string{"Item"}})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})
}

func TestColumnWidths(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	assert.Nil(t, columnWidths(pdf, 0))

	widths := columnWidths(pdf, 5)
	require.Len(t, widths, 5)
	assert.InDelta(t, 2*widths[1], widths[0], 0.001)

	var sum float64
	for _, w := range widths {
		sum += w
	}
	pageWidth, _ := pdf.GetPageSize()
	assert.InDelta(t, pageWidth-2*pageMargin, sum, 0.001)
}
