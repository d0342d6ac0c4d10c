package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/model"
)

func GuideIndex(guidePages []*model.GuidePage) templ.Component {
	return layout("Guide", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Quiet time guide</h1>
<ul class="guide-list">`)
		if err != nil {
			return err
		}

		for _, p := range guidePages {
			_, err = fmt.Fprintf(w, `
<li><a href="/guide/%s">%s</a></li>`, html.EscapeString(p.Slug), html.EscapeString(p.Title))
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `
</ul>`)
		return err
	})
}

func GuidePage(page *model.GuidePage) templ.Component {
	return layout(page.Title, func(ctx context.Context, w io.Writer) error {
		// page HTML comes from trusted markdown content shipped with the app
		_, err := fmt.Fprintf(w, `<article class="guide">%s</article>`, page.HTMLContent)
		return err
	})
}

func NotFound() templ.Component {
	return layout("Not found", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Page not found</h1>
<p><a href="/">Back to start</a></p>`)
		return err
	})
}
