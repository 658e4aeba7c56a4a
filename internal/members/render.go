package members

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/jufengpp/signup/internal/domain"
)

// EmptyText is shown when nobody has registered yet.
const EmptyText = "暂无报名数据"

// Headers are the column titles of the member table.
var Headers = []string{"序号", "姓名", "联系电话", "课程包"}

// Row is one display line of the member table.
type Row struct {
	Index         int    `yaml:"index"`
	ID            string `yaml:"id,omitempty"`
	Name          string `yaml:"name"`
	Phone         string `yaml:"phone"`
	CoursePackage string `yaml:"course_package"`
	Label         string `yaml:"label"`
}

// Rows numbers records from 1 in server order.
func Rows(records []domain.RegistrationRecord) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Index:         i + 1,
			ID:            string(r.ID),
			Name:          r.Name,
			Phone:         r.Phone,
			CoursePackage: string(r.CoursePackage),
			Label:         r.CoursePackage.Label(),
		}
	}
	return rows
}

// Cells returns the row's values in Headers order.
func (r Row) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.Name, r.Phone, r.Label}
}

// WriteTable renders records as an aligned plain-text table. Widths are
// measured in terminal cells so CJK names line up.
func WriteTable(w io.Writer, records []domain.RegistrationRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, EmptyText)
		return err
	}

	rows := Rows(records)
	widths := make([]int, len(Headers))
	for i, h := range Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row.Cells() {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeLine := func(cells []string) error {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
		return err
	}

	if err := writeLine(Headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeLine(row.Cells()); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML renders records as a YAML list of rows.
func WriteYAML(w io.Writer, records []domain.RegistrationRecord) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Rows(records)); err != nil {
		return fmt.Errorf("encoding members: %w", err)
	}
	return encoder.Close()
}
