package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// staticFS serves the embedded stylesheet and script under /static/.
var staticFS, _ = fs.Sub(staticFiles, "static")

var pages = template.Must(template.New("pages").Parse(pageTemplates))

const pageTemplates = `
{{define "page"}}<!DOCTYPE html>
<html lang="{{.Msg.Lang}}" dir="{{.Msg.Dir}}" data-theme="{{.State.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header class="header">
    <h1><i class="fas fa-shield-alt"></i> {{.Title}}</h1>
    <nav class="nav">
      {{- range .Sections}}
      <a href="#{{.Section}}">{{.Title}}</a>
      {{- end}}
    </nav>
    <form class="theme-form" method="post" action="/theme">
      <input type="hidden" name="return" value="{{.Return}}">
      <button type="submit" class="theme-toggle" title="{{.Msg.ToggleTheme}}">
        <i class="fas {{if eq .State.Theme "dark"}}fa-sun{{else}}fa-moon{{end}}"></i>
      </button>
    </form>
  </header>

  {{- if .LoadError}}
  <div class="notification show" role="alert">{{.Msg.LoadError}}</div>
  {{- end}}

  <section class="stats">
    {{- range .Sections}}
    <div class="stat"><span class="stat-number">{{.Total}}</span><span class="stat-label">{{.Title}}</span></div>
    {{- end}}
  </section>

  <form class="search-form" method="get" action="/">
    <input type="search" name="q" value="{{.State.Query}}" placeholder="{{.Msg.SearchPlaceholder}}" autocomplete="off">
    {{- if ne .State.ToolsCategory "all"}}<input type="hidden" name="tools" value="{{.State.ToolsCategory}}">{{end}}
    {{- if ne .State.ArticlesCategory "all"}}<input type="hidden" name="articles" value="{{.State.ArticlesCategory}}">{{end}}
    {{- if .State.Domain}}<input type="hidden" name="domain" value="{{.State.Domain}}">{{end}}
    <button type="submit"><i class="fas fa-search"></i></button>
    {{- if .State.Query}}
    <a class="search-clear" href="{{.ClearHref}}">{{.Msg.Clear}}</a>
    {{- end}}
  </form>

  <main>
    {{- range .Sections}}
    {{template "section" .}}
    {{- end}}
  </main>

  {{- if .LiveReload}}
  <script src="/static/live.js" data-version="{{.Version}}" defer></script>
  {{- end}}
</body>
</html>
{{end}}

{{define "section"}}
<section id="{{.Section}}" class="section" data-shown="{{.Shown}}">
  <h2>{{.Title}}</h2>
  {{- if .Buttons}}
  <div class="category-filters">
    {{- range .Buttons}}
    <a class="filter-btn{{if .Active}} active{{end}}" href="{{.Href}}" data-category="{{.Value}}">{{if eq .Value "all"}}{{$.Msg.All}}{{else}}{{.Value}}{{end}}</a>
    {{- end}}
  </div>
  {{- end}}
  {{- if .DomainForm}}
  <form class="domain-form" method="get" action="/#dorks">
    <input type="text" name="domain" value="{{.State.Domain}}" placeholder="{{.Msg.DomainPlaceholder}}" autocomplete="off">
    {{- if .State.Query}}<input type="hidden" name="q" value="{{.State.Query}}">{{end}}
    {{- if ne .State.ToolsCategory "all"}}<input type="hidden" name="tools" value="{{.State.ToolsCategory}}">{{end}}
    {{- if ne .State.ArticlesCategory "all"}}<input type="hidden" name="articles" value="{{.State.ArticlesCategory}}">{{end}}
    <button type="submit"><i class="fas fa-crosshairs"></i></button>
  </form>
  {{- end}}
  <div class="grid" id="{{.Section}}Grid">{{.Body}}</div>
</section>
{{end}}
`
