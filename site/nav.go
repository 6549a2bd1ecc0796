package site

import "strings"

// Link is one entry of the navigation bar.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	// Button marks the call-to-action link, styled as a button.
	Button bool `json:"button,omitempty"`
	Active bool `json:"active"`
}

// Routes lists the site pages in navigation order.
var Routes = []Link{
	{Label: "Home", Path: "/"},
	{Label: "Research", Path: "/research"},
	{Label: "AI Solutions", Path: "/ai-solutions"},
	{Label: "Simulation", Path: "/simulation"},
	{Label: "Contact", Path: "/contact", Button: true},
}

// IsActive reports whether the link to path is highlighted while current is
// shown. Home is active only on "" and "/". Other links match exactly or as
// a suffix, so pages served under a base path still highlight.
func IsActive(current, path string) bool {
	if path == "/" {
		return current == "/" || current == ""
	}
	return current == path || strings.HasSuffix(current, path)
}

// Links returns Routes with Active set for current.
func Links(current string) []Link {
	out := make([]Link, len(Routes))
	for i, l := range Routes {
		l.Active = IsActive(current, l.Path)
		out[i] = l
	}
	return out
}
