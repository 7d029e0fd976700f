package simpleexcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is a block of rows: an optional title line, an optional
// header line and one line per element of the bound data slice.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
	Data        interface{}    `yaml:"-"`
}

// ColumnConfig maps a struct field to a column.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"`
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
	// TimeFormat is a Go layout applied to time.Time values.
	TimeFormat string `yaml:"time_format"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// DataExporter renders a ReportTemplate with data bound per section ID.
type DataExporter struct {
	template ReportTemplate
	data     map[string]interface{}
}

func NewDataExporterFromYamlConfig(yamlConfig string) (*DataExporter, error) {
	if yamlConfig == "" {
		return nil, fmt.Errorf("yaml config is empty")
	}
	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(yamlConfig), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("yaml config has no sheets")
	}
	return &DataExporter{template: tmpl, data: make(map[string]interface{})}, nil
}

// BindSectionData binds a slice of structs to the section with the given ID.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// BuildExcel renders every sheet into a new workbook.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()

	for i, sheet := range e.template.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, err
		}

		row := 1
		for _, sec := range sheet.Sections {
			next, err := e.renderSection(f, sheet.Name, sec, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("render section %q: %w", sec.ID, err)
			}
			row = next + 1
		}
	}
	return f, nil
}

func (e *DataExporter) renderSection(f *excelize.File, sheet string, sec SectionConfig, row int) (int, error) {
	for i, col := range sec.Columns {
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return row, err
			}
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return row, err
			}
		}
	}

	if sec.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
			return row, err
		}
		if err := e.applyStyle(f, sheet, sec.TitleStyle, row, 1); err != nil {
			return row, err
		}
		row++
	}

	if sec.ShowHeader {
		for i, col := range sec.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, headerOf(col)); err != nil {
				return row, err
			}
		}
		if err := e.applyStyle(f, sheet, sec.HeaderStyle, row, len(sec.Columns)); err != nil {
			return row, err
		}
		row++
	}

	err := e.eachRow(sec, func(values []interface{}) error {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
		return nil
	})
	return row, err
}

func (e *DataExporter) applyStyle(f *excelize.File, sheet string, tmpl *StyleTemplate, row, cols int) error {
	if tmpl == nil || cols == 0 {
		return nil
	}
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{Bold: tmpl.Font.Bold, Color: tmpl.Font.Color}
	}
	if tmpl.Fill != nil && tmpl.Fill.Color != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{tmpl.Fill.Color}}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(cols, row)
	return f.SetCellStyle(sheet, start, end, id)
}

// eachRow walks the data bound to sec and hands fn the formatted cell values
// of each element.
func (e *DataExporter) eachRow(sec SectionConfig, fn func([]interface{}) error) error {
	data := sec.Data
	if bound, ok := e.data[sec.ID]; ok {
		data = bound
	}
	if data == nil {
		return nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("section data must be a slice, got %s", v.Kind())
	}

	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		values := make([]interface{}, len(sec.Columns))
		for j, col := range sec.Columns {
			values[j] = extractValue(item, col)
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return nil
}

func extractValue(item reflect.Value, col ColumnConfig) interface{} {
	if item.Kind() != reflect.Struct {
		return nil
	}
	field := item.FieldByName(col.FieldName)
	if !field.IsValid() || !field.CanInterface() {
		return nil
	}

	switch val := field.Interface().(type) {
	case time.Time:
		if col.TimeFormat != "" {
			return val.Format(col.TimeFormat)
		}
		return val
	case fmt.Stringer:
		return val.String()
	}
	if field.Kind() == reflect.String {
		return field.String()
	}
	return field.Interface()
}

func headerOf(col ColumnConfig) string {
	if col.Header != "" {
		return col.Header
	}
	return col.FieldName
}

// ToWriter writes the workbook as .xlsx.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ToCSV writes the first sheet as CSV: titles become single-cell lines.
func (e *DataExporter) ToCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	for _, sec := range e.template.Sheets[0].Sections {
		if sec.Title != "" {
			if err := csvWriter.Write([]string{sec.Title}); err != nil {
				return err
			}
		}
		if sec.ShowHeader {
			header := make([]string, len(sec.Columns))
			for i, col := range sec.Columns {
				header[i] = headerOf(col)
			}
			if err := csvWriter.Write(header); err != nil {
				return err
			}
		}
		err := e.eachRow(sec, func(values []interface{}) error {
			record := make([]string, len(values))
			for i, v := range values {
				if t, ok := v.(time.Time); ok {
					record[i] = t.Format(time.RFC3339)
					continue
				}
				if v == nil {
					continue
				}
				s := fmt.Sprintf("%v", v)
				if reflect.ValueOf(v).Kind() == reflect.String {
					s = escapeFormula(s)
				}
				record[i] = s
			}
			return csvWriter.Write(record)
		})
		if err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// escapeFormula prefixes text cells that a spreadsheet would evaluate as a
// formula with a single quote.
func escapeFormula(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
