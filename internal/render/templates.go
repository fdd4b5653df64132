package render

const fragments = `
{{define "notice"}}<p class="notice">{{.}}</p>{{end}}

{{define "skipped"}}<p class="notice skipped">{{.}}</p>{{end}}

{{define "unavailable"}}<p class="notice unavailable">{{.What}} not available.</p>
{{- if .Err}}
<pre class="error">{{.Err}}</pre>
{{- end}}{{end}}

{{define "pre"}}<pre>{{.}}</pre>{{end}}

{{define "bar"}}<div class="bar"><div class="fill" style="width: {{.}}%"></div></div>{{end}}

{{define "disk"}}<table class="disk">
<thead><tr><th>Filesystem</th><th>Size</th><th>Used</th><th>Avail</th><th>Use</th><th>Mounted on</th></tr></thead>
<tbody>
{{- range .}}
<tr><td>{{.Filesystem}}</td><td>{{.Size}}</td><td>{{.Used}}</td><td>{{.Avail}}</td><td>{{template "bar" .Width}}<span class="pct">{{.Width}}%</span></td><td>{{.Mount}}</td></tr>
{{- end}}
</tbody>
</table>{{end}}

{{define "memory"}}<p>Used {{.Used}} of {{.Total}} ({{.Percent}}%)</p>
{{template "bar" .Percent}}
<pre>{{.Raw}}</pre>{{end}}

{{define "cpu"}}<p>Load average (1 min): {{.Load}} ({{.Percent}}% of one CPU)</p>
{{template "bar" .Percent}}
<pre>{{.Raw}}</pre>{{end}}

{{define "smart"}}
{{- range .}}<h4>{{.Device}}</h4>
<pre>{{.Text}}</pre>
{{end}}{{end}}

{{define "integrity"}}
{{- if .Failing}}<p>Packages with modified or missing files:</p>
<ul class="packages">
{{- range .Failing}}
<li>{{.}}</li>
{{- end}}
</ul>
{{end}}
{{- if .Raw}}<pre>{{.Raw}}</pre>{{end}}{{end}}

{{define "logtable"}}<p class="counts">{{.Total}} recent error(s):
{{- range .Counts}} <span class="sev" style="color: {{.Color}}">{{.Count}} {{.Label}}</span>{{end}}</p>
<table class="logs">
<thead><tr><th>Time</th><th>Host</th><th>Process</th><th>Message</th><th>Explanation</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td class="time">{{.Time}}</td><td>{{.Host}}</td><td>{{.Process}}</td><td class="msg">
{{- range .Message}}{{if .Mark}}<mark>{{.Text}}</mark>{{else}}{{.Text}}{{end}}{{end -}}
</td><td style="color: {{.Color}}"><strong>{{.Label}}:</strong> {{.Explanation}}</td></tr>
{{- end}}
</tbody>
</table>{{end}}

{{define "sysinfo"}}<table class="sysinfo">
<tbody>
{{- range .}}
<tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>
{{- end}}
</tbody>
</table>{{end}}
`
