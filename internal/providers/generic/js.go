package generic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Readers that build the page list in JavaScript usually embed it as an
// array of quoted strings. Escaped slashes from JSON encoders are undone
// before matching.
var reScriptImage = regexp.MustCompile(`["']((?:https?:)?//[^"'\s]+?\.(?i:jpe?g|png|webp|wepb)(?:\?[^"'\s]*)?)["']`)

// ScanScripts collects image URLs quoted inside inline <script> bodies, in
// source order. It is the fallback for pages without usable <img> tags.
func (c *imageCollector) ScanScripts(doc *goquery.Document) int {
	before := len(c.urls)

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}

		body := strings.ReplaceAll(s.Text(), `\/`, "/")
		for _, m := range reScriptImage.FindAllStringSubmatch(body, -1) {
			c.add(m[1])
		}
	})

	return len(c.urls) - before
}
