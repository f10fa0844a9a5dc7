package web

import (
	"html/template"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/render"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

type typeOption struct {
	Value   string
	Label   string
	Checked bool
}

type pageData struct {
	State        form.State
	GradeLevels  []string
	Types        []typeOption
	MinQuestions int
	MaxQuestions int
	BlockReason  string
	Generating   bool
	Flash        string
	Notice       string

	Worksheet     template.HTML
	WorksheetCSS  template.CSS
	HasWorksheet  bool
	DownloadFiles []string
}

func (s *Server) pageData(flash, notice string) (pageData, error) {
	st := s.ctrl.State()
	data := pageData{
		State:        st,
		GradeLevels:  worksheet.GradeLevels,
		MinQuestions: form.MinQuestions,
		MaxQuestions: form.MaxQuestions,
		BlockReason:  s.ctrl.BlockReason(),
		Generating:   s.ctrl.Pending(),
		Flash:        flash,
		Notice:       notice,
	}
	for _, t := range worksheet.AllQuestionTypes {
		data.Types = append(data.Types, typeOption{
			Value:   string(t),
			Label:   t.Label(),
			Checked: st.QuestionTypes[t],
		})
	}

	css, err := render.Style()
	if err != nil {
		return data, err
	}
	data.WorksheetCSS = css

	if ws := s.worksheet(); ws != nil {
		frag, err := render.Fragment(render.Render(ws))
		if err != nil {
			return data, err
		}
		data.Worksheet = frag
		data.HasWorksheet = true
		data.DownloadFiles = render.Formats
	}
	return data, nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Worksheet AI</title>
<style>
body { font-family: system-ui, sans-serif; background: #f1f5f9; margin: 0; color: #0f172a; }
.app { display: grid; grid-template-columns: minmax(320px, 420px) 1fr; gap: 24px; padding: 24px; }
.card { background: #fff; border-radius: 12px; padding: 20px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
label { display: block; font-weight: 600; margin: 12px 0 4px; }
input[type=text], input[type=url], select, textarea { width: 100%; box-sizing: border-box; padding: 8px; }
textarea { min-height: 80px; }
.types label, .check { font-weight: normal; }
.flash { color: #be123c; }
.notice { color: #15803d; }
.hint { color: #64748b; font-size: .9em; }
.links li { display: flex; justify-content: space-between; }
button.primary { background: #7c3aed; color: #fff; border: 0; border-radius: 8px; padding: 10px 16px; font-size: 1em; }
@media print { .app > .card:first-child, .downloads { display: none; } .app { display: block; } }
{{.WorksheetCSS}}
</style>
</head>
<body>
<div class="app">
<form class="card" method="post" action="/generate" enctype="multipart/form-data">
  <input type="hidden" name="formPresent" value="1">
  <h1>Worksheet AI</h1>

  <label for="topic">Topic</label>
  <input type="text" id="topic" name="topic" value="{{.State.Topic}}" placeholder="e.g., The Solar System">

  <label for="gradeLevel">Grade level</label>
  <select id="gradeLevel" name="gradeLevel">
  {{- range .GradeLevels}}
    <option{{if eq . $.State.GradeLevel}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>

  <label for="numQuestions">Number of questions: {{.State.NumQuestions}}</label>
  <input type="range" id="numQuestions" name="numQuestions" min="{{.MinQuestions}}" max="{{.MaxQuestions}}" value="{{.State.NumQuestions}}">

  <label>Question types</label>
  <div class="types">
  {{- range .Types}}
    <label><input type="checkbox" name="questionTypes" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>
  {{- end}}
  </div>

  <label class="check"><input type="checkbox" name="includeAnswerKey" value="on"{{if .State.IncludeAnswerKey}} checked{{end}}> Include answer key</label>

  <label for="customInstructions">Custom instructions</label>
  <textarea id="customInstructions" name="customInstructions">{{.State.CustomInstructions}}</textarea>

  <label for="sourceText">Source text</label>
  <textarea id="sourceText" name="sourceText" placeholder="Paste text to base the questions on">{{.State.SourceText}}</textarea>
  {{- if .State.SourceFileName}}
  <p class="hint">Using {{.State.SourceFileName}} <button formaction="/source/remove">Remove</button></p>
  {{- end}}

  <label for="file">Upload a file (.txt, .pdf, .docx, up to 10MB)</label>
  <input type="file" id="file" name="file" accept=".txt,.pdf,.docx,text/plain,application/pdf,application/vnd.openxmlformats-officedocument.wordprocessingml.document">
  <button formaction="/source">Upload</button>

  <label for="link">Source links</label>
  <input type="url" id="link" name="link" placeholder="https://...">
  <button formaction="/links">Add link</button>
  {{- if .State.SourceLinks}}
  <ul class="links">
  {{- range .State.SourceLinks}}
    <li><span>{{.}}</span> <button formaction="/links/remove" name="removeLink" value="{{.}}">Remove</button></li>
  {{- end}}
  </ul>
  {{- end}}

  {{- if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
  {{- if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
  {{- if .BlockReason}}<p class="hint">{{.BlockReason}}</p>{{end}}
  <p><button class="primary" type="submit"{{if .Generating}} disabled{{end}}>{{if .Generating}}Generating...{{else}}Generate Worksheet{{end}}</button></p>
</form>

<section class="card">
{{- if .HasWorksheet}}
  <p class="downloads">
  {{- range .DownloadFiles}}
    <a href="/download/{{.}}">Download {{.}}</a>
  {{- end}}
  </p>
  {{.Worksheet}}
{{- else}}
  <p class="hint">Your worksheet will appear here.</p>
{{- end}}
</section>
</div>
</body>
</html>
`))
