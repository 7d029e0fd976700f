package simpleexcel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Name  string
	Count int
	When  time.Time
}

const testLayout = `
sheets:
  - name: "Items"
    sections:
      - id: "items"
        title: "Inventory"
        show_header: true
        header_style:
          font:
            bold: true
          fill:
            color: "#BBDEFB"
        columns:
          - field_name: "Name"
            header: "Item"
            width: 20
          - field_name: "Count"
          - field_name: "When"
            header: "Checked"
            time_format: "2006-01-02"
`

func testRows() []row {
	return []row{
		{"bolts", 12, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
		{"nuts", 3, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func TestNewDataExporterFromYamlConfig(t *testing.T) {
	_, err := NewDataExporterFromYamlConfig("")
	assert.Error(t, err)

	_, err = NewDataExporterFromYamlConfig("sheets: []")
	assert.Error(t, err)

	_, err = NewDataExporterFromYamlConfig("sheets: [")
	assert.Error(t, err)
}

func TestToWriter(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(testLayout)
	require.NoError(t, err)
	exporter.BindSectionData("items", testRows())

	var buf bytes.Buffer
	require.NoError(t, exporter.ToWriter(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Inventory"}, rows[0])
	assert.Equal(t, []string{"Item", "Count", "Checked"}, rows[1])
	assert.Equal(t, []string{"bolts", "12", "2024-05-02"}, rows[2])
	assert.Equal(t, []string{"nuts", "3", "2024-05-03"}, rows[3])
}

func TestToWriterEmptyData(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(testLayout)
	require.NoError(t, err)
	exporter.BindSectionData("items", []row{})

	var buf bytes.Buffer
	require.NoError(t, exporter.ToWriter(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestToCSV(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(testLayout)
	require.NoError(t, err)
	exporter.BindSectionData("items", testRows())

	var buf bytes.Buffer
	require.NoError(t, exporter.ToCSV(&buf))
	assert.Equal(t, "Inventory\nItem,Count,Checked\nbolts,12,2024-05-02\nnuts,3,2024-05-03\n", buf.String())
}

func TestBindNonSlice(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(testLayout)
	require.NoError(t, err)
	exporter.BindSectionData("items", row{Name: "single"})

	var buf bytes.Buffer
	assert.Error(t, exporter.ToCSV(&buf))
}

func TestToCSVEscapesFormulas(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(testLayout)
	require.NoError(t, err)
	exporter.BindSectionData("items", []row{
		{`=HYPERLINK("http://evil","x")`, 1, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
		{"+1", -4, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
		{"@sum", 0, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
		{"-x", 0, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
	})

	var buf bytes.Buffer
	require.NoError(t, exporter.ToCSV(&buf))
	assert.Equal(t, "Inventory\nItem,Count,Checked\n"+
		`"'=HYPERLINK(""http://evil"",""x"")",1,2024-05-02`+"\n"+
		"'+1,-4,2024-05-02\n"+
		"'@sum,0,2024-05-02\n"+
		"'-x,0,2024-05-02\n",
		buf.String())
}
