package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/sarangchurch/quiettime/internal/ctxkeys"
)

// layout wraps page body markup with the shared document shell. The CSRF
// token rides along in a meta tag for the fetch calls the pages make
// against /api.
func layout(title string, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := "QuietTime"
		cfg := ctxkeys.Config(ctx)
		if cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}

		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<meta name="csrf-token" content="%s"/>
<title>%s | %s</title>
<link rel="stylesheet" href="/assets/css/app.css"/>
</head>
<body>`, html.EscapeString(ctxkeys.CSRFToken(ctx)), html.EscapeString(title), html.EscapeString(appName))
		if err != nil {
			return err
		}

		err = nav(ctx, w)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `<main class="container">`)
		if err != nil {
			return err
		}

		err = body(ctx, w)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `</main>
<script src="/assets/js/app.js"></script>
</body>
</html>`)
		return err
	})
}

func nav(ctx context.Context, w io.Writer) error {
	user := ctxkeys.User(ctx)
	if user == nil {
		_, err := io.WriteString(w, `<nav class="nav"><a href="/" class="brand">QT</a></nav>`)
		return err
	}

	profile := ctxkeys.Profile(ctx)
	_, err := fmt.Fprintf(w, `<nav class="nav">
<a href="/app/dashboard" class="brand">QT</a>
<a href="/app/devotion">Check-ins</a>
<a href="/app/bible">Bible</a>
<a href="/app/reading">Reading Plan</a>
<a href="/guide">Guide</a>`)
	if err != nil {
		return err
	}

	if profile != nil && profile.IsLeaderOrAdmin() {
		_, err = io.WriteString(w, `
<a href="/admin/members">Admin</a>`)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, `
<a href="/app/profile">%s</a>
<form method="post" action="/auth/logout" class="inline"><input type="hidden" name="csrf_token" value="%s"/><button type="submit">Sign out</button></form>
</nav>`, html.EscapeString(displayName(ctx)), html.EscapeString(ctxkeys.CSRFToken(ctx)))
	return err
}

func displayName(ctx context.Context) string {
	profile := ctxkeys.Profile(ctx)
	if profile != nil && profile.FullName != "" {
		return profile.FullName
	}
	return "Profile"
}

func csrfField(ctx context.Context) string {
	return fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s"/>`,
		html.EscapeString(ctxkeys.CSRFToken(ctx)))
}
