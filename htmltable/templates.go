package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range .Cells}}<th{{if .Class}} class='{{.Class}}'{{end}}>{{.HTML}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr{{if .RowClass}} class='{{.RowClass}}'{{end}}>{{range .Cells}}<td{{if .Class}} class='{{.Class}}'{{end}}>{{.HTML}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))

	// ExpandedTemplate renders a schemagrid.ExpandedContent.
	ExpandedTemplate = template.Must(template.New("expanded").Parse("" +
		"<div class='expandedContent'>\n" +
		"{{range .Sections}}" +
		"  <div class='expandedItems'><span class='itemHeading'>{{.Heading}} :</span><br><ul>" +
		"{{range .Items}}<li>{{.}}</li>{{end}}" +
		"</ul></div>\n" +
		"{{end}}" +
		"</div>",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	RowClass    string
	Cells       []CellTemplateContext
}

type CellTemplateContext struct {
	Class string
	HTML  template.HTML
}
