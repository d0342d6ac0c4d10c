package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/service"
)

func Dashboard(today string, stats *service.CheckinStats, todayCheckin *model.Checkin) templ.Component {
	return layout("Dashboard", func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Today, %s</h1>
<section class="stats">
<div class="stat"><span class="value">%d</span><span class="label">day streak</span></div>
<div class="stat"><span class="value">%d</span><span class="label">longest streak</span></div>
<div class="stat"><span class="value">%d</span><span class="label">this week</span></div>
<div class="stat"><span class="value">%d</span><span class="label">this month</span></div>
<div class="stat"><span class="value">%d</span><span class="label">total</span></div>
</section>`, html.EscapeString(today),
			stats.CurrentStreak, stats.LongestStreak, stats.ThisWeek, stats.ThisMonth, stats.Total)
		if err != nil {
			return err
		}

		if todayCheckin == nil {
			_, err = io.WriteString(w, `<p>No quiet time logged today yet.</p>
<a class="button" href="/app/devotion">Log today's quiet time</a>`)
			return err
		}

		_, err = fmt.Fprintf(w, `<section class="today-checkin" data-checkin-id="%s">
<h2>Today's quiet time</h2>
<p>%s &ndash; %s</p>
<a class="button" href="/app/devotion">Edit</a>
</section>`, html.EscapeString(todayCheckin.ID),
			html.EscapeString(timeOrDash(todayCheckin.StartTime)),
			html.EscapeString(timeOrDash(todayCheckin.EndTime)))
		return err
	})
}

func timeOrDash(t *string) string {
	if t == nil || *t == "" {
		return "-"
	}
	return *t
}
