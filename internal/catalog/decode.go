package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"

	"github.com/starford/arsenal/internal/models"
)

// Issue is a problem found in one record. Records with issues are still
// loaded; the offending field is left empty.
type Issue struct {
	Section  models.Section `json:"section"`
	Position int            `json:"position"`
	Field    string         `json:"field,omitempty"`
	Message  string         `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s[%d]: %s", i.Section, i.Position, i.Message)
	}
	return fmt.Sprintf("%s[%d].%s: %s", i.Section, i.Position, i.Field, i.Message)
}

// Decode parses a catalog document. Only a document that is not a mapping
// at the top level is an error; anything wrong below that degrades to
// empty fields and is reported as an Issue.
func Decode(data []byte, format Format) (*models.Catalog, []Issue, error) {
	var doc map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: parse %s document: %w", format, err)
	}
	if doc == nil {
		return nil, nil, errors.New("catalog: document is empty")
	}

	d := &decoder{doc: doc}
	c := &models.Catalog{
		Tools:        decodeSection(d, models.SectionTools, toTool, validateTool),
		Repositories: decodeSection(d, models.SectionRepositories, toRepository, validateRepository),
		Articles:     decodeSection(d, models.SectionArticles, toArticle, validateArticle),
		Extensions:   decodeSection(d, models.SectionExtensions, toExtension, validateExtension),
		Dorks:        decodeSection(d, models.SectionDorks, toDork, validateDork),
		Checklists:   decodeSection(d, models.SectionChecklists, toChecklist, validateChecklist),
	}
	return c, d.issues, nil
}

type decoder struct {
	doc    map[string]any
	issues []Issue
}

func (d *decoder) issue(s models.Section, pos int, field, msg string) {
	d.issues = append(d.issues, Issue{Section: s, Position: pos, Field: field, Message: msg})
}

// record is one raw section entry. Fields that are present but not scalars
// are collected in invalid so the caller can report them.
type record struct {
	fields  map[string]any
	invalid []string
}

// str returns the trimmed string form of a scalar field, or "" when the
// field is missing or structured.
func (r *record) str(key string) string {
	switch v := r.fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	default:
		r.invalid = append(r.invalid, key)
		return ""
	}
}

func decodeSection[T any](d *decoder, s models.Section, build func(*record) T, validate func(*T) validation.Errors) []T {
	raw, ok := d.doc[string(s)]
	if !ok || raw == nil {
		return []T{}
	}
	items, ok := raw.([]any)
	if !ok {
		d.issue(s, -1, "", "section is not a list")
		return []T{}
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			d.issue(s, i, "", "record is not a mapping")
			m = map[string]any{}
		}
		entry := &record{fields: m}
		rec := build(entry)
		for _, field := range entry.invalid {
			d.issue(s, i, field, "must be a scalar value")
		}
		errs := validate(&rec)
		for _, field := range slices.Sorted(maps.Keys(errs)) {
			d.issue(s, i, field, errs[field].Error())
		}
		out = append(out, rec)
	}
	return out
}

// absoluteURL accepts only absolute http(s) URLs.
var absoluteURL = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
})

// linkRules is applied to every link field. A failing link is cleared.
var linkRules = []validation.Rule{is.URL, absoluteURL}

// fieldErrors runs ozzo struct validation and normalizes its result.
func fieldErrors(err error) validation.Errors {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs
	}
	return validation.Errors{"": err}
}

func toTool(r *record) models.Tool {
	return models.Tool{
		Name:        r.str("name"),
		Description: r.str("description"),
		Category:    r.str("category"),
		Icon:        r.str("icon"),
		Link:        r.str("link"),
	}
}

func validateTool(t *models.Tool) validation.Errors {
	errs := fieldErrors(validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Link, linkRules...),
	))
	if _, bad := errs["link"]; bad {
		t.Link = ""
	}
	return errs
}

func toRepository(r *record) models.Repository {
	return models.Repository{
		Name:        r.str("name"),
		Description: r.str("description"),
		Category:    r.str("category"),
		Link:        r.str("link"),
	}
}

func validateRepository(rp *models.Repository) validation.Errors {
	errs := fieldErrors(validation.ValidateStruct(rp,
		validation.Field(&rp.Name, validation.Required),
		validation.Field(&rp.Link, linkRules...),
	))
	if _, bad := errs["link"]; bad {
		rp.Link = ""
	}
	return errs
}

func toArticle(r *record) models.Article {
	return models.Article{
		Title:       r.str("title"),
		Description: r.str("description"),
		Category:    r.str("category"),
		Date:        r.str("date"),
		ReadTime:    r.str("readTime"),
		Link:        r.str("link"),
	}
}

func validateArticle(a *models.Article) validation.Errors {
	errs := fieldErrors(validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.Link, linkRules...),
	))
	if _, bad := errs["link"]; bad {
		a.Link = ""
	}
	return errs
}

func toExtension(r *record) models.Extension {
	return models.Extension{
		Name:        r.str("name"),
		Description: r.str("description"),
		Icon:        r.str("icon"),
		Link:        r.str("link"),
		Store:       r.str("store"),
	}
}

func validateExtension(e *models.Extension) validation.Errors {
	errs := fieldErrors(validation.ValidateStruct(e,
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Link, linkRules...),
	))
	if _, bad := errs["link"]; bad {
		e.Link = ""
	}
	return errs
}

func toDork(r *record) models.Dork {
	return models.Dork{
		Name:        r.str("name"),
		Description: r.str("description"),
		Icon:        r.str("icon"),
		Query:       r.str("query"),
	}
}

func validateDork(dk *models.Dork) validation.Errors {
	return fieldErrors(validation.ValidateStruct(dk,
		validation.Field(&dk.Name, validation.Required),
		validation.Field(&dk.Query, validation.Required),
	))
}

func toChecklist(r *record) models.Checklist {
	return models.Checklist{
		Name:        r.str("name"),
		Description: r.str("description"),
		Category:    r.str("category"),
		Link:        r.str("link"),
	}
}

func validateChecklist(c *models.Checklist) validation.Errors {
	errs := fieldErrors(validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Link, linkRules...),
	))
	if _, bad := errs["link"]; bad {
		c.Link = ""
	}
	return errs
}
