package report

import "html/template"

var document = template.Must(template.New("report").Funcs(template.FuncMap{
	"stamp": func(r *Report) string { return r.GeneratedAt.Format("2006-01-02 15:04:05 UTC") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{if .Hostname}} - {{.Hostname}}{{end}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 72rem; padding: 0 1rem; color: #222; background: #fafafa; }
h1 { margin-bottom: 0.2rem; }
.generated { color: #666; margin-top: 0; }
details { background: #fff; border: 1px solid #ddd; border-radius: 6px; margin: 0.8rem 0; padding: 0.4rem 1rem; }
summary { cursor: pointer; font-size: 1.15rem; font-weight: 600; padding: 0.4rem 0; }
table { border-collapse: collapse; width: 100%; margin: 0.5rem 0; font-size: 0.9rem; }
th, td { border-bottom: 1px solid #eee; padding: 0.35rem 0.5rem; text-align: left; vertical-align: top; }
th { background: #f3f3f3; }
pre { background: #f6f8fa; border-radius: 4px; overflow-x: auto; padding: 0.6rem; font-size: 0.85rem; }
pre.error { background: #fdf0ef; }
.bar { background: #e5e5e5; border-radius: 3px; display: inline-block; height: 0.8rem; margin-right: 0.4rem; vertical-align: middle; width: 8rem; }
.fill { background: #3c8dbc; border-radius: 3px; height: 100%; }
.notice { color: #555; font-style: italic; }
.time { white-space: nowrap; }
.msg mark { background: #ffe08a; }
.counts .sev { font-weight: 600; margin-left: 0.6rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="generated">{{if .Hostname}}Host <strong>{{.Hostname}}</strong>, generated{{else}}Generated{{end}} {{stamp .}}</p>
{{- range .Sections}}
<details id="{{.ID}}"{{if not .Collapsed}} open{{end}}>
<summary>{{.Title}}</summary>
{{.Body}}
</details>
{{- end}}
</body>
</html>
`))
