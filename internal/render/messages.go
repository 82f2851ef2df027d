package render

import (
	"fmt"
	"sort"

	"github.com/starford/arsenal/internal/models"
)

// DefaultLocale is used when a requested locale is unknown.
const DefaultLocale = "en"

// Messages holds the user-visible strings of one locale.
type Messages struct {
	Lang  string
	Dir   string
	Arrow string // arrow glyph pointing "forward" in reading direction

	NoResults      string
	ViewOnGitHub   string
	OpenRepository string
	ReadArticle    string
	GetFromStore   string // fmt pattern, %s is the store label
	OpenSource     string
	ClickToSearch  string
	EnterDomain    string
	LoadError      string

	SearchPlaceholder string
	DomainPlaceholder string
	All               string
	ToggleTheme       string
	Clear             string

	Sections map[models.Section]string
}

// GetFrom returns the extension call to action for a store label.
func (m Messages) GetFrom(store string) string {
	return fmt.Sprintf(m.GetFromStore, store)
}

// SectionTitle returns the heading of a section.
func (m Messages) SectionTitle(s models.Section) string {
	if t, ok := m.Sections[s]; ok {
		return t
	}
	return string(s)
}

var locales = map[string]Messages{
	"en": {
		Lang:  "en",
		Dir:   "ltr",
		Arrow: "fa-arrow-right",

		NoResults:      "No results",
		ViewOnGitHub:   "View on GitHub",
		OpenRepository: "Open repository",
		ReadArticle:    "Read article",
		GetFromStore:   "Get it on %s",
		OpenSource:     "Open source",
		ClickToSearch:  "Click to search on Google",
		EnterDomain:    "Enter a domain above to search",
		LoadError:      "Error loading data",

		SearchPlaceholder: "Search tools, repositories, articles...",
		DomainPlaceholder: "example.com",
		All:               "All",
		ToggleTheme:       "Toggle theme",
		Clear:             "Clear",

		Sections: map[models.Section]string{
			models.SectionTools:        "Tools",
			models.SectionRepositories: "Repositories",
			models.SectionArticles:     "Articles",
			models.SectionExtensions:   "Extensions",
			models.SectionDorks:        "Google Dorks",
			models.SectionChecklists:   "Checklists",
		},
	},
	"ar": {
		Lang:  "ar",
		Dir:   "rtl",
		Arrow: "fa-arrow-left",

		NoResults:      "لا توجد نتائج",
		ViewOnGitHub:   "عرض على GitHub",
		OpenRepository: "فتح المستودع",
		ReadArticle:    "اقرأ المقال",
		GetFromStore:   "احصل على %s",
		OpenSource:     "فتح المصدر",
		ClickToSearch:  "انقر للبحث في Google",
		EnterDomain:    "أدخل النطاق أعلاه للبحث",
		LoadError:      "حدث خطأ في تحميل البيانات",

		SearchPlaceholder: "ابحث في الأدوات والمستودعات والمقالات...",
		DomainPlaceholder: "example.com",
		All:               "الكل",
		ToggleTheme:       "تبديل المظهر",
		Clear:             "مسح",

		Sections: map[models.Section]string{
			models.SectionTools:        "الأدوات",
			models.SectionRepositories: "المستودعات",
			models.SectionArticles:     "المقالات",
			models.SectionExtensions:   "الإضافات",
			models.SectionDorks:        "دوركات جوجل",
			models.SectionChecklists:   "قوائم التحقق",
		},
	},
}

// MessagesFor returns the strings for locale, falling back to DefaultLocale.
func MessagesFor(locale string) Messages {
	if m, ok := locales[locale]; ok {
		return m
	}
	return locales[DefaultLocale]
}

// Locales lists the supported locale codes.
func Locales() []string {
	out := make([]string, 0, len(locales))
	for k := range locales {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
