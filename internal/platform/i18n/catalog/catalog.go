// Package catalog loads the embedded locale message catalogs used to
// localize command-line output and registers them with x/text/message.
//
// Catalogs live at locales/<locale>/<namespace>.yaml and use a quoted
// subset of YAML:
//
//	locale: "pt-BR"
//	namespace: "ticketctl"
//	messages:
//	  "ticket %d is owned by %s\n": "ingresso %d pertence a %s\n"
//
// Keys are the printf formats used by callers, so an untranslated key
// still prints correctly through a message.Printer.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the source locale every other catalog translates.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// Default returns the process-wide embedded bundle, already registered
// with x/text/message.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*/*.yaml catalog in fsys. A key may be
// defined once per locale across all of its namespaces.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{messages: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.buildMatcher(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.locale != dirLocale {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.locale, dirLocale)
	}
	if file.namespace != fileNamespace {
		return fmt.Errorf("catalog %s: namespace %q must match file name %q", p, file.namespace, fileNamespace)
	}

	messages, ok := b.messages[file.locale]
	if !ok {
		messages = map[string]string{}
		b.messages[file.locale] = messages
	}
	for key, text := range file.messages {
		if _, dup := messages[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, file.locale)
		}
		messages[key] = text
	}
	return nil
}

// Register installs every message with x/text/message, under the exact
// locale tag and under its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for key, text := range b.messages[locale] {
			for _, t := range tags {
				if err := message.SetString(t, key, text); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether locale has a catalog.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.messages[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.messages))
	for locale := range b.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns a copy of the messages defined for locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	for key, text := range b.messages[strings.TrimSpace(locale)] {
		out[key] = text
	}
	return out
}

// Message looks up key in locale, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil || key == "" {
		return "", false
	}
	if text, ok := b.messages[strings.TrimSpace(locale)][key]; ok {
		return text, true
	}
	text, ok := b.messages[BaseLocale][key]
	return text, ok
}

// Match returns the catalog language best matching lang, which may be a
// single tag or an Accept-Language list. Unknown input selects BaseLocale.
func (b *Bundle) Match(lang string) language.Tag {
	base := language.MustParse(BaseLocale)
	if b == nil || b.matcher == nil {
		return base
	}
	desired, _, err := language.ParseAcceptLanguage(strings.TrimSpace(lang))
	if err != nil || len(desired) == 0 {
		return base
	}
	_, index, confidence := b.matcher.Match(desired...)
	if confidence == language.No {
		return base
	}
	return b.tags[index]
}

// Printer returns a message printer for the locale best matching lang.
func (b *Bundle) Printer(lang string) *message.Printer {
	return message.NewPrinter(b.Match(lang))
}

func (b *Bundle) buildMatcher() error {
	// BaseLocale first so it wins ties.
	locales := []string{BaseLocale}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	b.tags = make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}

type catalogFile struct {
	locale    string
	namespace string
	messages  map[string]string
}

func parse(data string) (catalogFile, error) {
	file := catalogFile{messages: map[string]string{}}
	inMessages := false
	for n, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !inMessages {
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				return catalogFile{}, fmt.Errorf("line %d: expected header field", n+1)
			}
			value = strings.TrimSpace(value)
			var err error
			switch strings.TrimSpace(name) {
			case "locale":
				file.locale, err = strconv.Unquote(value)
			case "namespace":
				file.namespace, err = strconv.Unquote(value)
			case "messages":
				if value != "" {
					err = fmt.Errorf("messages must be a block")
				}
				inMessages = true
			default:
				err = fmt.Errorf("unknown field %q", name)
			}
			if err != nil {
				return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
			}
			continue
		}
		key, text, err := parseEntry(line)
		if err != nil {
			return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
		}
		if strings.TrimSpace(key) == "" {
			return catalogFile{}, fmt.Errorf("line %d: blank message key", n+1)
		}
		file.messages[key] = text
	}

	switch {
	case file.locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case file.namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(file.messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return file, nil
}

// parseEntry splits a `"key": "value"` line. The key may itself contain
// colons, so the closing quote is found by scanning escapes.
func parseEntry(line string) (string, string, error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", fmt.Errorf("expected quoted key")
	}
	end := -1
	for i := 1; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return "", "", fmt.Errorf("unterminated key")
	}
	key, err := strconv.Unquote(line[:end+1])
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(line[end+1:]), ":")
	if !ok {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	text, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, text, nil
}
