// Package excel exports stored assessments as spreadsheet audit trails.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"sizhen/domain/diagnosis"
	"sizhen/internal/errors"
	"sizhen/ports"
)

const sheetName = "Assessments"

var exportHeader = []string{
	"Assessment ID", "Patient ID", "Timestamp", "Constitution",
	"Confidence", "Energy", "Yin", "Yang", "Balance",
	"Wood", "Fire", "Earth", "Metal", "Water",
	"Dominant", "Deficient", "Imbalances",
	"Modalities", "Conflicts", "Table Version",
}

// Exporter writes assessment audit sheets.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the stored assessments to an xlsx file, one row per
// assessment.
func (e *Exporter) Export(path string, stored []*ports.StoredAssessment) error {
	f, err := e.build(stored)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errors.WithCode(errors.CodeExportError, err)
	}
	return nil
}

// Write streams the workbook to w, for HTTP downloads.
func (e *Exporter) Write(w io.Writer, stored []*ports.StoredAssessment) error {
	f, err := e.build(stored)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return errors.WithCode(errors.CodeExportError, err)
	}
	return nil
}

func (e *Exporter) build(stored []*ports.StoredAssessment) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, errors.WithCode(errors.CodeExportError, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.WithCode(errors.CodeExportError, err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, errors.WithCode(errors.CodeExportError, err)
		}
	}

	for i, s := range stored {
		a := s.Assessment
		row := []interface{}{
			a.ID.String(), s.PatientID.String(), a.Timestamp.String(), string(a.ConstitutionType),
			a.DiagnosticConfidence, a.EnergyLevel, a.YinYang.Yin, a.YinYang.Yang, string(a.YinYang.Balance),
			a.Elements.Wood, a.Elements.Fire, a.Elements.Earth, a.Elements.Metal, a.Elements.Water,
			string(a.Elements.DominantElement), string(a.Elements.DeficientElement), strings.Join(a.Elements.Imbalances, "; "),
			joinModalities(a.ModalitiesUsed), describeConflicts(a.Conflicts), a.TableVersion,
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, errors.WithCode(errors.CodeExportError, err)
			}
		}
	}

	return f, nil
}

func joinModalities(ms []diagnosis.Modality) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func describeConflicts(conflicts []diagnosis.ConflictRecord) string {
	if len(conflicts) == 0 {
		return ""
	}
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = fmt.Sprintf("%s (%s): %s", c.Type, c.Severity, c.Resolution)
	}
	return strings.Join(parts, "; ")
}
