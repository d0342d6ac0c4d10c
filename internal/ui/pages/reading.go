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

// Reading lists available templates and the member's plans.
func Reading(templates []*model.ReadingTemplate, plans []*model.ReadingPlan) templ.Component {
	return layout("Reading plan", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Reading plans</h1>
<section>
<h2>Your plans</h2>
<ul class="plan-list">`)
		if err != nil {
			return err
		}

		for _, plan := range plans {
			_, err = fmt.Fprintf(w, `
<li><a href="/app/reading/%s">%d</a> <span class="status">%s</span></li>`,
				html.EscapeString(plan.ID), plan.Year, html.EscapeString(plan.Status))
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `
</ul>
</section>
<section>
<h2>Available plans</h2>
<ul class="template-list">`)
		if err != nil {
			return err
		}

		for _, t := range templates {
			_, err = fmt.Fprintf(w, `
<li>%s <button class="start-plan" data-template="%s">Start</button></li>`,
				html.EscapeString(t.Title), html.EscapeString(t.ID))
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

// ReadingPlanDetail renders one plan's daily items with completion state.
func ReadingPlanDetail(progress *service.PlanProgress, items []*model.ReadingTemplateItem) templ.Component {
	return layout("Reading plan", func(ctx context.Context, w io.Writer) error {
		done := make(map[string]bool, len(progress.Completions))
		for _, c := range progress.Completions {
			done[c.Date] = true
		}

		_, err := fmt.Fprintf(w, `<h1>Reading plan %d</h1>
<p>%d of %d days (%.1f%%) &middot; %s</p>
<ul class="day-list" data-plan="%s">`,
			progress.Plan.Year, progress.DoneDays, progress.TotalDays, progress.Percent,
			html.EscapeString(progress.Plan.Status), html.EscapeString(progress.Plan.ID))
		if err != nil {
			return err
		}

		for _, item := range items {
			class := "day"
			if done[item.Date] {
				class = "day done"
			}
			_, err = fmt.Fprintf(w, `
<li class="%s" data-date="%s"><span class="date">%s</span> <span class="passages">%s</span></li>`,
				class, html.EscapeString(item.Date), html.EscapeString(item.Date), html.EscapeString(item.Passages))
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, `
</ul>`)
		return err
	})
}
