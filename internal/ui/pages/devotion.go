package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/model"
)

// Devotion renders the monthly check-in calendar plus the check-in form.
// The form posts through /api/checkins from the page script; this markup
// only seeds it with today's state.
func Devotion(today string, monthCheckins []*model.Checkin) templ.Component {
	return layout("Check-ins", func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Quiet time check-ins</h1>
<section id="checkin-form" data-today="%s">
<form>
%s
<label>Date <input type="date" name="checkin_date" value="%s" required/></label>
<label>Started <input type="time" name="start_time"/></label>
<label>Ended <input type="time" name="end_time"/></label>
<label>Memo <textarea name="memo"></textarea></label>
<button type="submit">Save</button>
</form>
</section>
<section id="month-calendar">
<h2>This month</h2>
<ul class="checkin-list">`, html.EscapeString(today), csrfField(ctx), html.EscapeString(today))
		if err != nil {
			return err
		}

		for _, c := range monthCheckins {
			class := "checkin"
			if c.IsChild() {
				class = "checkin continuation"
			}
			_, err = fmt.Fprintf(w, `
<li class="%s" data-id="%s" data-date="%s">%s %s&ndash;%s</li>`,
				class, html.EscapeString(c.ID), html.EscapeString(c.CheckinDate),
				html.EscapeString(c.CheckinDate),
				html.EscapeString(timeOrDash(c.StartTime)), html.EscapeString(timeOrDash(c.EndTime)))
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `
</ul>
</section>`)
		return err
	})
}
