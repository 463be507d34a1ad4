// Package templates holds the service's HTML components. The markup lives
// in the .templ files; run `templ generate` after editing them.
package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

type Endpoint struct {
	Method      string
	Path        string
	Description string
}

type IndexData struct {
	Title     string
	Version   string
	Periods   []string
	Default   string
	Endpoints []Endpoint
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
