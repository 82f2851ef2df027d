package render

const cardTemplates = `
{{define "tool"}}
<div class="card" data-category="{{.Record.Category}}">
  <div class="card-icon"><i class="fas {{.Record.Icon}}"></i></div>
  <span class="card-category">{{.Record.Category}}</span>
  <h3>{{.Record.Name}}</h3>
  <p>{{.Description}}</p>
  {{- if .Record.Link}}
  <a href="{{.Record.Link}}" target="_blank" rel="noopener noreferrer" class="card-link">
    <i class="fab fa-github"></i> {{.Msg.ViewOnGitHub}} <i class="fas {{.Msg.Arrow}}"></i>
  </a>
  {{- end}}
</div>
{{end}}

{{define "repository"}}
<div class="card">
  <div class="card-icon"><i class="fas fa-code-branch"></i></div>
  <span class="card-category">{{.Record.Category}}</span>
  <h3>{{.Record.Name}}</h3>
  <p>{{.Description}}</p>
  {{- if .Record.Link}}
  <a href="{{.Record.Link}}" target="_blank" rel="noopener noreferrer" class="card-link">
    <i class="fab fa-github"></i> {{.Msg.OpenRepository}} <i class="fas {{.Msg.Arrow}}"></i>
  </a>
  {{- end}}
</div>
{{end}}

{{define "article"}}
<div class="article-card">
  <div class="article-header">
    <span class="article-category">{{.Record.Category}}</span>
    <h3>{{.Record.Title}}</h3>
  </div>
  <div class="article-body">
    <p class="article-description">{{.Description}}</p>
    <div class="article-meta">
      <span><i class="far fa-calendar-alt"></i> {{.Record.Date}}</span>
      <span><i class="far fa-clock"></i> {{.Record.ReadTime}}</span>
    </div>
    {{- if .Record.Link}}
    <a href="{{.Record.Link}}" target="_blank" rel="noopener noreferrer" class="article-link">
      <i class="fab fa-medium"></i> {{.Msg.ReadArticle}} <i class="fas {{.Msg.Arrow}}"></i>
    </a>
    {{- end}}
  </div>
</div>
{{end}}

{{define "extension"}}
<div class="card">
  <div class="card-icon"><i class="fas fa-puzzle-piece"></i></div>
  <h3>{{.Record.Name}}</h3>
  <p>{{.Description}}</p>
  {{- if .Record.Link}}
  <a href="{{.Record.Link}}" target="_blank" rel="noopener noreferrer" class="card-link">
    <i class="{{.Glyph}}"></i> {{.Msg.GetFrom .Record.Store}} <i class="fas {{.Msg.Arrow}}"></i>
  </a>
  {{- end}}
</div>
{{end}}

{{define "dork"}}
{{- if .SearchURL}}
<a class="dork-card active" href="{{.SearchURL}}" target="_blank" rel="noopener noreferrer">
{{- else}}
<div class="dork-card">
{{- end}}
  <div class="card-icon"><i class="fas {{.Record.Icon}}"></i></div>
  <h3>{{.Record.Name}}</h3>
  <p>{{.Description}}</p>
  <div class="dork-query">{{.Query}}</div>
  {{- if .SearchURL}}
  <p class="dork-hint active">{{.Msg.ClickToSearch}}</p>
</a>
  {{- else}}
  <p class="dork-hint">{{.Msg.EnterDomain}}</p>
</div>
  {{- end}}
{{end}}

{{define "checklist"}}
<div class="card">
  <div class="card-icon"><i class="fas fa-clipboard-check"></i></div>
  <span class="card-category">{{.Record.Category}}</span>
  <h3>{{.Record.Name}}</h3>
  <p>{{.Description}}</p>
  {{- if .Record.Link}}
  <a href="{{.Record.Link}}" target="_blank" rel="noopener noreferrer" class="card-link">
    <i class="fas fa-external-link-alt"></i> {{.Msg.OpenSource}} <i class="fas {{.Msg.Arrow}}"></i>
  </a>
  {{- end}}
</div>
{{end}}

{{define "empty"}}
<div class="empty-state">
  <i class="fas fa-search"></i>
  <p>{{.NoResults}}</p>
</div>
{{end}}
`
