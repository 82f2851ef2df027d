package mcpserver

// CatalogFormatContract describes the catalog document Arsenal loads.
const CatalogFormatContract = `# Arsenal Catalog Format

The catalog is one JSON or YAML document (` + "`" + `.json` + "`" + `, ` + "`" + `.yaml` + "`" + `, ` + "`" + `.yml` + "`" + `).
Its top level maps section names to ordered lists of records. Missing sections
are empty; unknown keys are ignored. Records display in document order.

## Sections

| Section | Fields |
|---|---|
| ` + "`" + `tools` + "`" + ` | name, description, category, icon, link |
| ` + "`" + `repositories` + "`" + ` | name, description, category, link |
| ` + "`" + `articles` + "`" + ` | title, description, category, date, readTime, link |
| ` + "`" + `extensions` + "`" + ` | name, description, icon, link, store |
| ` + "`" + `dorks` + "`" + ` | name, description, icon, query |
| ` + "`" + `checklists` + "`" + ` | name, description, category, link |

## Rules

1. **name** (or **title** for articles) is required; a record without it still
   loads but is reported as an issue.
2. **link** must be an absolute ` + "`" + `http` + "`" + ` or ` + "`" + `https` + "`" + ` URL. Anything else is dropped.
3. **category** is free text compared by exact match. ` + "`" + `all` + "`" + ` is reserved.
4. **icon** is a Font Awesome class such as ` + "`" + `fa-sitemap` + "`" + `. For extensions only
   ` + "`" + `fa-github` + "`" + ` is recognized; every other value shows the Firefox glyph.
5. **query** (dorks) holds the literal ` + "`" + `{domain}` + "`" + ` placeholder, replaced once by the
   target domain.
6. **description** may use inline Markdown (code spans, emphasis, strikethrough).
   Raw HTML and block syntax (headings, lists) are shown as literal text.

## Example

` + "```" + `json
{
  "tools": [
    {"name": "amass", "description": "Subdomain enumeration", "category": "recon",
     "icon": "fa-sitemap", "link": "https://github.com/owasp-amass/amass"}
  ],
  "dorks": [
    {"name": "PDF files", "description": "Public documents", "icon": "fa-file-pdf",
     "query": "site:{domain} filetype:pdf"}
  ]
}
` + "```" + `
`
