package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingRenderer struct {
	req *RenderRequest
	err error
}

func (c *capturingRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	c.req = req
	if c.err != nil {
		return nil, c.err
	}
	return &RenderResult{PDFData: []byte("%PDF-1.4"), PageCount: 1}, nil
}

func (c *capturingRenderer) Close() error { return nil }

func TestTableHTML(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	t.Run("renders header and escaped cells", func(t *testing.T) {
		html, err := TableHTML("Obras", at, []string{"Código", "Nombre"}, [][]string{
			{"OBR-1", "<script>alert(1)</script>"},
			{"OBR-2", "Torre Sur"},
		})
		require.NoError(t, err)

		assert.Contains(t, html, "<title>Obras</title>")
		assert.Contains(t, html, "<th>Código</th><th>Nombre</th>")
		assert.Contains(t, html, "<td>Torre Sur</td>")
		assert.Contains(t, html, "&lt;script&gt;")
		assert.NotContains(t, html, "<script>alert")
		assert.Contains(t, html, "09/03/2024 14:05")
		assert.Contains(t, html, "2 registros")
	})

	t.Run("empty table prints placeholder row", func(t *testing.T) {
		html, err := TableHTML("Clientes", at, []string{"A", "B", "C"}, nil)
		require.NoError(t, err)
		assert.Contains(t, html, `colspan="3"`)
		assert.Contains(t, html, "Sin registros")
	})
}

func TestTableRenderer_RenderTable(t *testing.T) {
	t.Run("narrow tables print portrait with footer", func(t *testing.T) {
		pdf := &capturingRenderer{}
		r := NewTableRenderer(pdf)

		data, err := r.RenderTable(context.Background(), "Cuentas", []string{"Código", "Nombre"}, [][]string{{"1", "Activo"}})
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), data)

		require.NotNil(t, pdf.req)
		assert.False(t, pdf.req.Landscape)
		assert.Equal(t, "Cuentas", pdf.req.Title)
		assert.Equal(t, DefaultMargins(), pdf.req.Margins)
		assert.Contains(t, pdf.req.FooterHTML, "pageNumber")
		assert.Contains(t, pdf.req.HTML, "<td>Activo</td>")
	})

	t.Run("wide tables print landscape", func(t *testing.T) {
		pdf := &capturingRenderer{}
		r := NewTableRenderer(pdf)

		cols := []string{"a", "b", "c", "d", "e", "f", "g"}
		_, err := r.RenderTable(context.Background(), "Obras", cols, nil)
		require.NoError(t, err)
		assert.True(t, pdf.req.Landscape)
	})

	t.Run("propagates renderer errors", func(t *testing.T) {
		boom := errors.New("chrome gone")
		r := NewTableRenderer(&capturingRenderer{err: boom})

		_, err := r.RenderTable(context.Background(), "x", []string{"a"}, nil)
		assert.ErrorIs(t, err, boom)
	})
}
