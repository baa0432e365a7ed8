package generic

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reImageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|wepb)$`)

type imageCollector struct {
	pageURL *url.URL
	urls    []string
	seen    map[string]bool
}

func newImageCollector(pageURL string) *imageCollector {
	base, _ := url.Parse(pageURL)

	return &imageCollector{
		pageURL: base,
		urls:    make([]string, 0, 64),
		seen:    make(map[string]bool),
	}
}

func (c *imageCollector) add(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "javascript:") {
		return
	}

	u := c.resolve(raw)
	lu := strings.ToLower(u)
	if strings.HasPrefix(lu, "data:") {
		return
	}
	if !strings.HasPrefix(lu, "http://") && !strings.HasPrefix(lu, "https://") {
		return
	}

	p := pathOf(u)
	if !reImageExt.MatchString(p) || isDecoration(p) {
		return
	}

	if c.seen[u] {
		return
	}
	c.seen[u] = true
	c.urls = append(c.urls, u)
}

func (c *imageCollector) resolve(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.IsAbs() || c.pageURL == nil {
		return u.String()
	}

	return c.pageURL.ResolveReference(u).String()
}

var decorationWords = []string{"logo", "cover", "profile", "avatar", "banner"}

// isDecoration looks at the file name only; hosts and directories often
// contain the same words.
func isDecoration(p string) bool {
	name := strings.ToLower(path.Base(p))
	for _, w := range decorationWords {
		if strings.Contains(name, w) {
			return true
		}
	}

	return false
}

func pathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	return u.Path
}

// ScanIMGTags collects one candidate per <img> in document order. The first
// srcset candidate is used only when no plain source attribute is present.
func (c *imageCollector) ScanIMGTags(doc *goquery.Document) int {
	before := len(c.urls)
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, k := range []string{"data-src", "data-lazy-src", "data-original", "src"} {
			if v, ok := img.Attr(k); ok && strings.TrimSpace(v) != "" {
				n := len(c.urls)
				c.add(v)
				if len(c.urls) > n {
					return
				}
			}
		}

		if ss, ok := img.Attr("srcset"); ok {
			if first := firstSrcset(ss); first != "" {
				c.add(first)
			}
		}
	})

	return len(c.urls) - before
}

func firstSrcset(ss string) string {
	for _, p := range strings.Split(ss, ",") {
		if parts := strings.Fields(strings.TrimSpace(p)); len(parts) > 0 {
			return parts[0]
		}
	}

	return ""
}
