package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/model"
)

// AdminMembers renders the member roster with per-member check-in stats
// and the provisioning form. Row actions post to /api/admin from the page
// script.
func AdminMembers(members []*model.Member, total, page, perPage int, search string) templ.Component {
	return layout("Members", func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Members</h1>
<form method="get" action="/admin/members" class="search">
<input type="search" name="q" value="%s" placeholder="Search name or email"/>
<button type="submit">Search</button>
</form>
<form method="post" action="/admin/members" class="provision">
%s
<input type="email" name="email" placeholder="Email" required/>
<input type="text" name="full_name" placeholder="Name" required/>
<select name="role">
<option value="member">Member</option>
<option value="leader">Leader</option>
<option value="admin">Admin</option>
</select>
<button type="submit">Add member</button>
</form>
<table class="members">
<thead><tr><th>Name</th><th>Email</th><th>Role</th><th>Check-ins</th><th>Streak</th><th>Last</th><th></th></tr></thead>
<tbody>`, html.EscapeString(search), csrfField(ctx))
		if err != nil {
			return err
		}

		for _, m := range members {
			locked := ""
			if m.IsLocked {
				locked = ` <span class="locked">locked</span>`
			}
			_, err = fmt.Fprintf(w, `
<tr data-user="%s">
<td>%s%s</td>
<td>%s</td>
<td>%s</td>
<td>%d</td>
<td>%d</td>
<td>%s</td>
<td>
<button class="reset-password">Reset password</button>
<button class="toggle-lock">%s</button>
<button class="delete-user">Delete</button>
</td>
</tr>`,
				html.EscapeString(m.UserID), html.EscapeString(m.FullName), locked,
				html.EscapeString(m.Email), html.EscapeString(m.Role),
				m.CheckinCount, m.CurrentStreak, html.EscapeString(lastOrDash(m.LastCheckin)),
				lockLabel(m.IsLocked))
			if err != nil {
				return err
			}
		}

		pageCount := (total + perPage - 1) / perPage
		_, err = fmt.Fprintf(w, `
</tbody>
</table>
<p class="pagination">Page %d of %d (%d members)</p>`, page, max(pageCount, 1), total)
		return err
	})
}

func lastOrDash(last *string) string {
	if last == nil || *last == "" {
		return "-"
	}
	return *last
}

func lockLabel(locked bool) string {
	if locked {
		return "Unlock"
	}
	return "Lock"
}
