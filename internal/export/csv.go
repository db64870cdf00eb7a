// Package export turns already-projected report rows into downloadable files.
// The exporter is a pure sink: rows in, bytes out. Richer formats plug in
// behind the same interface.
package export

import (
	"encoding/csv"
	"io"

	"clinic-app-server/internal/viewmodel"
)

// Exporter writes report rows to w in some download format.
type Exporter interface {
	ContentType() string
	FileExtension() string
	Write(w io.Writer, rows []viewmodel.AppointmentView) error
}

// CSVExporter writes the standard comma-separated export.
type CSVExporter struct{}

func (CSVExporter) ContentType() string   { return "text/csv; charset=utf-8" }
func (CSVExporter) FileExtension() string { return "csv" }

var csvHeader = []string{"Fecha", "Hora", "Paciente", "Especialista", "Especialidad", "Estado"}

// Write emits a header row followed by one line per appointment view.
func (CSVExporter) Write(w io.Writer, rows []viewmodel.AppointmentView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.DisplayDate,
			row.DisplayTime,
			row.PatientName,
			row.SpecialistName,
			row.Specialty,
			row.StateLabel,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
