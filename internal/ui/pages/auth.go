package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

func Login(errorMessage string) templ.Component {
	return layout("Sign in", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Sign in</h1>`)
		if err != nil {
			return err
		}

		if errorMessage != "" {
			_, err = fmt.Fprintf(w, `<p class="error">%s</p>`, html.EscapeString(errorMessage))
			if err != nil {
				return err
			}
		}

		_, err = fmt.Fprintf(w, `<form method="post" action="/auth/login">
%s
<label>Email <input type="email" name="email" required autocomplete="username"/></label>
<label>Password <input type="password" name="password" required autocomplete="current-password"/></label>
<button type="submit">Sign in</button>
</form>`, csrfField(ctx))
		return err
	})
}

func ChangePassword(forced bool, errorMessage string) templ.Component {
	return layout("Change password", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Change password</h1>`)
		if err != nil {
			return err
		}

		if forced {
			_, err = io.WriteString(w, `<p>Please choose a new password before continuing.</p>`)
			if err != nil {
				return err
			}
		}
		if errorMessage != "" {
			_, err = fmt.Fprintf(w, `<p class="error">%s</p>`, html.EscapeString(errorMessage))
			if err != nil {
				return err
			}
		}

		_, err = fmt.Fprintf(w, `<form method="post" action="/auth/change-password">
%s
<label>Current password <input type="password" name="current_password" required autocomplete="current-password"/></label>
<label>New password <input type="password" name="new_password" required autocomplete="new-password"/></label>
<label>Confirm new password <input type="password" name="confirm_password" required autocomplete="new-password"/></label>
<button type="submit">Change password</button>
</form>`, csrfField(ctx))
		return err
	})
}
