// Package messages renders symbolic chat replies into user-facing text.
package messages

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"golang.org/x/text/language"
)

var (
	traditionalChinese = language.MustParse("zh-TW")
	vietnamese         = language.Vietnamese
	english            = language.English
)

// supported is ordered to match templates; the matcher returns indexes into it.
var supported = []language.Tag{traditionalChinese, vietnamese, english}

var matcher = language.NewMatcher(supported)

// Catalog renders each reply once per configured locale, one line per locale.
type Catalog struct {
	locales []int
}

// New resolves the configured locale list, e.g. []string{"zh-TW", "vi"}.
func New(locales []string) (*Catalog, error) {
	c := &Catalog{}
	seen := make(map[int]bool)
	for _, raw := range locales {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid reply locale %q: %w", raw, err)
		}
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			return nil, fmt.Errorf("unsupported reply locale %q", raw)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		c.locales = append(c.locales, idx)
	}
	if len(c.locales) == 0 {
		c.locales = []int{0, 1}
	}
	return c, nil
}

// Locales returns the resolved BCP 47 tags in render order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for _, idx := range c.locales {
		out = append(out, supported[idx].String())
	}
	return out
}

func (c *Catalog) Render(reply chat.Reply) string {
	replacer := newReplacer(reply.Params)

	lines := make([]string, 0, len(c.locales))
	for _, idx := range c.locales {
		tmpl, ok := templates[idx][reply.Outcome]
		if !ok {
			tmpl, ok = templates[len(supported)-1][reply.Outcome]
		}
		if !ok {
			tmpl = templates[idx][chat.OutcomeInternalError]
		}
		line := replacer.Replace(tmpl)
		// Skip a locale whose rendering duplicates the previous line, e.g. a fallback.
		if len(lines) > 0 && lines[len(lines)-1] == line {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func newReplacer(params map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", params[k])
	}
	return strings.NewReplacer(pairs...)
}
