package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// NavigationExclusionMode controls which page chrome (menus, headers,
// footers, sidebars) is skipped when collecting tables. Layout tables in
// page chrome rarely hold data.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone collects every table.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit skips <nav>, <aside> and ARIA navigation
	// or complementary roles. <header> and <footer> are only skipped when
	// they are direct children of <body> or of a single top-level wrapper.
	NavigationExclusionExplicit

	// NavigationExclusionStandard (default) also skips elements whose class
	// or id names a menu, navbar, footer, sidebar or similar.
	NavigationExclusionStandard

	// NavigationExclusionAggressive also skips containers whose text is
	// mostly links.
	NavigationExclusionAggressive
)

// chromePattern matches class and id values of page chrome as whole words.
var chromePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// exclusionChecker decides which subtrees are page chrome.
type exclusionChecker struct {
	mode            NavigationExclusionMode
	bodyNode        *html.Node
	topLevelWrapper *html.Node // single wrapper div/main if present
}

func newExclusionChecker(mode NavigationExclusionMode, doc *html.Node) *exclusionChecker {
	checker := &exclusionChecker{mode: mode}

	checker.bodyNode = findElement(doc, "body")
	if checker.bodyNode == nil {
		checker.bodyNode = doc
	}
	checker.topLevelWrapper = detectTopLevelWrapper(checker.bodyNode)

	return checker
}

// detectTopLevelWrapper finds a single structural wrapper element if one exists,
// as in <body><div id="wrapper">...</div></body>.
func detectTopLevelWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			if wrapper != nil {
				return nil
			}
			wrapper = c
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}
	return wrapper
}

// shouldExclude reports whether n starts a subtree of page chrome.
func (ec *exclusionChecker) shouldExclude(n *html.Node) bool {
	if n.Type != html.ElementNode || ec.mode == NavigationExclusionNone {
		return false
	}
	if ec.isExplicitChrome(n) {
		return true
	}
	if ec.mode >= NavigationExclusionStandard && matchesChromePattern(n) {
		return true
	}
	if ec.mode >= NavigationExclusionAggressive && isLinkHeavy(n) {
		return true
	}
	return false
}

func (ec *exclusionChecker) isExplicitChrome(n *html.Node) bool {
	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		return ec.isTopLevel(n)
	}

	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return ec.isTopLevel(n)
	}
	return false
}

// isTopLevel returns true if the node is a direct child of body or a single top-level wrapper.
func (ec *exclusionChecker) isTopLevel(n *html.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	return parent == ec.bodyNode || (ec.topLevelWrapper != nil && parent == ec.topLevelWrapper)
}

func matchesChromePattern(n *html.Node) bool {
	for _, key := range []string{"class", "id"} {
		if v := getAttr(n, key); v != "" && chromePattern.MatchString(v) {
			return true
		}
	}
	return false
}

// isLinkHeavy reports a block container with at least four links whose
// link text is more than 60% of its text.
func isLinkHeavy(n *html.Node) bool {
	switch n.Data {
	case "div", "section", "ul", "ol":
	default:
		return false
	}

	total := textLength(n)
	if total == 0 {
		return false
	}
	return float64(linkTextLength(n))/float64(total) > 0.6 && countElements(n, "a") >= 4
}

// textLength returns the total length of text content in a node.
func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

// linkTextLength returns the length of text content within <a> tags.
func linkTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}

// countElements returns the number of elements named tag in the subtree.
func countElements(n *html.Node, tag string) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == tag {
		count = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, tag)
	}
	return count
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
