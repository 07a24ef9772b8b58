package transform

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var externalPrefixes = []string{"http://", "https://", "data:", "//"}

// UnresolvedImages lists img sources in html that neither point into the
// served media folder nor at an external location. Such references were not
// matched by any manifest entry (typically because the markup carries extra
// attributes) and will not load once served.
func UnresolvedImages(html, prepend, targetID string) []string {
	if !strings.Contains(html, "<img") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	mediaPrefix := MediaURL(prepend, targetID, "")
	var unresolved []string
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, mediaPrefix) || isExternal(src) {
			return
		}
		unresolved = append(unresolved, src)
	})
	return unresolved
}

func isExternal(src string) bool {
	lower := strings.ToLower(src)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
