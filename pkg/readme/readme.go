package readme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/resourcehub/resourcehub/pkg/types"
)

const (
	DefaultTitle   = "Resource Collection"
	DefaultTagline = "A beautifully stylized collection of resources."
)

type Options struct {
	Title   string
	Tagline string
	// GroupByTag adds a "## <tag>" section per category instead of one flat list.
	GroupByTag bool
}

// Generate renders the resource document as README markdown.
func Generate(doc *types.ResourceDocument, opts Options) string {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Tagline == "" {
		opts.Tagline = DefaultTagline
	}

	lines := []string{
		"# " + opts.Title,
		"",
		opts.Tagline,
		"",
		"## Resources",
		"",
	}

	var resources []types.Resource
	if doc != nil {
		resources = doc.Resources
	}

	if !opts.GroupByTag {
		for _, r := range resources {
			lines = append(lines, entry(r)...)
		}
		return strings.Join(lines, "\n")
	}

	var (
		order  []string
		groups = map[string][]types.Resource{}
	)
	for _, r := range resources {
		category := r.Category()
		if category == "" {
			category = "other"
		}
		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		groups[category] = append(groups[category], r)
	}
	for _, category := range order {
		lines = append(lines, "## "+category, "")
		for _, r := range groups[category] {
			lines = append(lines, entry(r)...)
		}
	}
	return strings.Join(lines, "\n")
}

func entry(r types.Resource) []string {
	return []string{
		fmt.Sprintf("### [%s](%s)", r.Title, r.URL),
		r.Description,
		"",
	}
}

// Render formats markdown for the terminal.
func Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
