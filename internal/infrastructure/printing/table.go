package printing

import (
	"bytes"
	"context"
	"html/template"
	"time"
)

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 9pt; color: #222; }
  h1 { font-size: 14pt; margin: 0 0 4px 0; }
  .meta { color: #666; margin-bottom: 10px; }
  table { width: 100%; border-collapse: collapse; }
  th { background: #e6e6e6; font-weight: bold; text-align: left; }
  th, td { border: 1px solid #bbb; padding: 3px 5px; vertical-align: top; }
  tr { page-break-inside: avoid; }
  thead { display: table-header-group; }
  .empty { text-align: center; color: #888; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.GeneratedAt}} · {{len .Rows}} registros</div>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- else}}
<tr><td class="empty" colspan="{{len .Columns}}">Sin registros</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>`))

const pageFooter = `<div style="font-size:8px;width:100%;text-align:right;padding-right:10mm;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

type tableView struct {
	Title       string
	GeneratedAt string
	Columns     []string
	Rows        [][]string
}

// TableHTML renders a titled table as a standalone HTML document. Cell values are escaped.
func TableHTML(title string, generatedAt time.Time, columns []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	err := tableTemplate.Execute(&buf, tableView{
		Title:       title,
		GeneratedAt: generatedAt.Format("02/01/2006 15:04"),
		Columns:     columns,
		Rows:        rows,
	})
	if err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to render table template", err)
	}
	return buf.String(), nil
}

// TableRenderer prints tables to PDF through a PDFRenderer
type TableRenderer struct {
	pdf PDFRenderer
	now func() time.Time
}

// NewTableRenderer creates a TableRenderer
func NewTableRenderer(pdf PDFRenderer) *TableRenderer {
	return &TableRenderer{pdf: pdf, now: time.Now}
}

// RenderTable prints the table on A4. Tables wider than six columns print landscape.
func (t *TableRenderer) RenderTable(ctx context.Context, title string, columns []string, rows [][]string) ([]byte, error) {
	doc, err := TableHTML(title, t.now(), columns, rows)
	if err != nil {
		return nil, err
	}
	result, err := t.pdf.Render(ctx, &RenderRequest{
		HTML:       doc,
		Title:      title,
		Landscape:  len(columns) > 6,
		Margins:    DefaultMargins(),
		FooterHTML: pageFooter,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}
