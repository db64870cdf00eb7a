package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/viewmodel"
)

func TestCSVExporterWrite(t *testing.T) {
	rows := []viewmodel.AppointmentView{
		{
			DisplayDate:    "01/03/2026",
			DisplayTime:    "09:30",
			PatientName:    "Gómez, Ana",
			SpecialistName: "Pérez, Luis",
			Specialty:      "Cardiología",
			StateLabel:     "Realizado",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, CSVExporter{}.Write(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Fecha,Hora,Paciente,Especialista,Especialidad,Estado", lines[0])
	assert.Contains(t, lines[1], "Cardiología")
	assert.Contains(t, lines[1], "\"Gómez, Ana\"", "names with commas must be quoted")
}

func TestCSVExporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVExporter{}.Write(&buf, nil))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(buf.String()), "\n")+1, "header only")
}

func TestCSVExporterMetadata(t *testing.T) {
	e := CSVExporter{}
	assert.Equal(t, "csv", e.FileExtension())
	assert.Contains(t, e.ContentType(), "text/csv")
}
