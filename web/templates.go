/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"time"

	"chainguard.dev/casecrew/pipeline"
	"chainguard.dev/casecrew/pipeline/present"
	"github.com/chainguard-dev/clog"
)

type modelOption struct {
	Name      string
	Available bool
}

type formPage struct {
	About      string
	Models     []modelOption
	Selected   string
	CanRun     bool
	CanSearch  bool
	Stages     []pipeline.Definition
	RunTimeout time.Duration
}

type runPage struct {
	RunID        string
	Status       pipeline.Status
	Failed       bool
	FailedStage  string
	Error        string
	Missing      bool
	Outputs      []present.View
	Intermediate []present.View
}

type viewData struct {
	RunID string
	View  present.View
}

const layout = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; min-height: 8rem; }
pre { white-space: pre-wrap; background: #f6f6f6; padding: 1rem; }
.error { color: #a00; }
.pending { color: #777; font-style: italic; }
</style>
</head>
<body>{{end}}
{{define "artifact"}}<section id="{{.View.Stage}}">
<h2>{{.View.Title}}</h2>
{{if .View.Pending}}<p class="pending">Pending: no artifact has been produced for this stage.</p>
{{else}}<pre>{{.View.Text}}</pre>
<p><a href="/runs/{{.RunID}}/artifacts/{{.View.Stage}}/download" download>Download {{.View.Title}}</a></p>
{{end}}</section>{{end}}`

var (
	formTemplate = parse("form", `{{template "head" "Case Study Problem Statement Generator & Solver"}}
<h1>AI-Powered Case Study Problem Statement Generator &amp; Solver</h1>
<aside><h2>About This App</h2><p>{{.About}}</p></aside>
{{if not .CanRun}}<p class="error">No API key is configured for any offered model. Set OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY and restart.</p>{{end}}
{{if not .CanSearch}}<p class="error">No SERPER_API_KEY is configured; stages that search the web will fail.</p>{{end}}
<form method="post" action="/runs">
<label for="case_study_details">Enter Case Study Details:</label>
<textarea id="case_study_details" name="case_study_details"></textarea>
<label for="context">Provide Context:</label>
<textarea id="context" name="context"></textarea>
<label for="model">Model:</label>
<select id="model" name="model">
{{range .Models}}<option value="{{.Name}}"{{if eq .Name $.Selected}} selected{{end}}{{if not .Available}} disabled{{end}}>{{.Name}}</option>
{{end}}</select>
<button type="submit"{{if not .CanRun}} disabled{{end}}>Run AI Agents</button>
</form>
<p>A run takes several minutes and gives up after {{.RunTimeout}}. Stages: {{range $i, $s := .Stages}}{{if $i}} &rarr; {{end}}{{$s.Name}}{{end}}.</p>
</body></html>`)

	runTemplate = parse("run", `{{template "head" "Run results"}}
<h1>Run {{.RunID}}</h1>
{{if .Failed}}<p class="error">The run failed{{with .FailedStage}} at stage {{.}}{{end}}: {{.Error}}</p>
{{else if eq .Status "running"}}<p>The run is still in progress.</p>
{{end}}
{{if .Missing}}<p class="error">Output files not found. Please ensure the tasks completed successfully.</p>{{end}}
{{range .Outputs}}{{template "artifact" (view $.RunID .)}}
{{end}}
<h2>Intermediate results</h2>
<ul>
{{range .Intermediate}}<li><a href="/runs/{{$.RunID}}/artifacts/{{.Stage}}">{{.Title}}</a>{{if .Pending}} <span class="pending">(pending)</span>{{end}}</li>
{{end}}</ul>
<p><a href="/">New case study</a></p>
</body></html>`)

	artifactTemplate = parse("fragment", `{{template "artifact" .}}`)
)

var funcs = template.FuncMap{
	"view": func(runID string, v present.View) viewData { return viewData{RunID: runID, View: v} },
}

// parse adds body to a copy of the shared layout.
func parse(name, body string) *template.Template {
	t := template.Must(template.New("layout").Funcs(funcs).Parse(layout))
	return template.Must(t.New(name).Parse(body))
}

func (s *Server) render(ctx context.Context, w http.ResponseWriter, status int, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		clog.FromContext(ctx).With("template", t.Name()).With("error", err).Error("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
