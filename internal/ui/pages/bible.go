package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/service"
)

// Bible renders the annual readthrough grid, one row per book with its
// chapter toggles. Toggles post to /api/bible/toggle from the page script.
func Bible(progress *service.YearProgress, readthroughCount int) templ.Component {
	return layout("Bible reading", func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Bible reading %d</h1>
<p>%d of %d chapters (%.1f%%) &middot; %d full readthroughs</p>
<div class="book-grid" data-year="%d">`,
			progress.Year, progress.ChaptersRead, progress.TotalChapters, progress.Percent,
			readthroughCount, progress.Year)
		if err != nil {
			return err
		}

		for _, bp := range progress.Books {
			read := make(map[int]bool, len(bp.ReadChapters))
			for _, ch := range bp.ReadChapters {
				read[ch] = true
			}

			rowClass := "book"
			if bp.Complete {
				rowClass = "book complete"
			}
			_, err = fmt.Fprintf(w, `
<div class="%s" data-book="%d">
<h3>%s <small>%d/%d</small></h3>
<button class="mark-book" data-book="%d">all</button>
<button class="unmark-book" data-book="%d">none</button>
<div class="chapters">`, rowClass, bp.Book.ID, html.EscapeString(bp.Book.Name),
				bp.ReadCount, bp.Book.Chapters, bp.Book.ID, bp.Book.ID)
			if err != nil {
				return err
			}

			for ch := 1; ch <= bp.Book.Chapters; ch++ {
				chClass := "chapter"
				if read[ch] {
					chClass = "chapter read"
				}
				_, err = fmt.Fprintf(w, `<button class="%s" data-book="%d" data-chapter="%d">%d</button>`,
					chClass, bp.Book.ID, ch, ch)
				if err != nil {
					return err
				}
			}

			_, err = io.WriteString(w, `</div>
</div>`)
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `
</div>`)
		return err
	})
}
