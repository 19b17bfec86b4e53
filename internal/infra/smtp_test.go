package infra

import (
	"context"
	"testing"

	"github.com/45061/Hotelregistryapp/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReporteEmail(t *testing.T) {
	e, err := buildReporteEmail("caja@hotel.co", "gerencia@hotel.co", "Reporte Diario de Caja - 2024-03-09 06:30 AM",
		"<h1>Reporte de Caja</h1>", "reporte-2024-03-09_0630_AM.pdf", []byte("%PDF-1.3 test"))
	require.NoError(t, err)

	assert.Equal(t, []string{"gerencia@hotel.co"}, e.To)
	require.Len(t, e.Attachments, 1)
	assert.Equal(t, "reporte-2024-03-09_0630_AM.pdf", e.Attachments[0].Filename)

	raw, err := e.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "application/pdf")
}

func TestBuildReporteEmail_EmptyPDF(t *testing.T) {
	_, err := buildReporteEmail("a@hotel.co", "b@hotel.co", "s", "", "r.pdf", nil)
	assert.Error(t, err)
}

func TestMailer_RequiresHost(t *testing.T) {
	m := NewMailer(&config.Config{SMTPUser: "caja@hotel.co"})
	assert.Equal(t, "caja@hotel.co", m.from)

	err := m.SendReporte(context.Background(), "b@hotel.co", "s", "", "r.pdf", []byte("%PDF"))
	assert.ErrorContains(t, err, "SMTP_HOST")
}
