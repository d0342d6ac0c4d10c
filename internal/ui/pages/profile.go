package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/model"
)

func Profile(profile *model.Profile, email string) templ.Component {
	return layout("Profile", func(ctx context.Context, w io.Writer) error {
		checked := ""
		if profile.ShareWithLeaders {
			checked = " checked"
		}

		_, err := fmt.Fprintf(w, `<h1>Profile</h1>
<p>%s &middot; %s</p>
<form method="post" action="/app/profile">
%s
<label>Name <input type="text" name="full_name" value="%s" required/></label>
<label><input type="checkbox" name="share_with_leaders"%s/> Share my check-ins with group leaders</label>
<button type="submit">Save</button>
</form>
<p><a href="/auth/change-password">Change password</a></p>`,
			html.EscapeString(email), html.EscapeString(profile.Role),
			csrfField(ctx), html.EscapeString(profile.FullName), checked)
		return err
	})
}
