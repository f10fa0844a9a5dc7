package render

import (
	"bytes"
	"html/template"
	"io"
)

const worksheetTemplate = `{{define "worksheet"}}<article class="worksheet" id="printable-worksheet">
  <header>
    <h1>{{.Title}}</h1>
    <p class="topic">Topic: {{.Topic}}</p>
    <div class="student">
      <span>Name: _________________________</span>
      <span>Date: _________________________</span>
    </div>
  </header>
  <main>
  {{- range .Blocks}}
    <section class="question {{.Type}}">
      <p class="stem">{{.Number}}. {{.Stem}}</p>
      {{- if .Options}}
      <ol class="options">
        {{- range .Options}}
        <li><span class="letter">{{.Letter}}.</span> {{.Text}}</li>
        {{- end}}
      </ol>
      {{- end}}
      {{- if .WritingLines}}
      <div class="writing-area" style="height: {{lineHeight .WritingLines}}em"></div>
      {{- end}}
    </section>
  {{- end}}
  </main>
  {{- if .HasAnswerKey}}
  <section class="answer-key" id="answer-key">
    <h2>Answer Key</h2>
    <ol>
      {{- range .AnswerKey}}
      <li value="{{.Number}}"><strong>{{.Number}}.</strong> {{.Answer}}</li>
      {{- end}}
    </ol>
  </section>
  {{- end}}
</article>{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{template "style"}}</style>
</head>
<body>
{{template "worksheet" .}}
</body>
</html>
{{end}}

{{define "style"}}
body { font-family: Georgia, serif; max-width: 210mm; margin: 0 auto; padding: 20mm; color: #222; }
.worksheet header { border-bottom: 1px solid #ccc; margin-bottom: 2em; padding-bottom: 1em; text-align: center; }
.worksheet .topic { color: #666; }
.worksheet .student { display: flex; justify-content: space-between; margin-top: 1em; font-size: 0.9em; }
.worksheet .question { margin-bottom: 1.5em; break-inside: avoid; }
.worksheet .stem { font-weight: 600; }
.worksheet .options { list-style: none; padding-left: 1.5em; }
.worksheet .letter { font-family: monospace; margin-right: 0.5em; }
.worksheet .writing-area { border: 1px dashed #bbb; border-radius: 4px; margin-top: 0.5em; }
.worksheet .answer-key { border-top: 2px dashed #999; margin-top: 3em; padding-top: 1.5em; }
.worksheet .answer-key h2 { text-align: center; }
.worksheet .answer-key ol { list-style: none; padding-left: 0; }
{{end}}`

// Templates holds the "worksheet" fragment, the "style" block and the
// standalone "page".
var Templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"lineHeight": func(lines int) float64 { return float64(lines) * 1.5 },
}).Parse(worksheetTemplate))

// HTMLExporter writes a standalone, printable HTML page.
type HTMLExporter struct{}

func (e *HTMLExporter) Extension() string   { return ".html" }
func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

func (e *HTMLExporter) Export(w io.Writer, doc Document) error {
	return Templates.ExecuteTemplate(w, "page", doc)
}

// Fragment renders only the worksheet article, for embedding in another
// page.
func Fragment(doc Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Templates.ExecuteTemplate(&buf, "worksheet", doc); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Style returns the CSS used by the worksheet fragment.
func Style() (template.CSS, error) {
	var buf bytes.Buffer
	if err := Templates.ExecuteTemplate(&buf, "style", nil); err != nil {
		return "", err
	}
	return template.CSS(buf.String()), nil
}
