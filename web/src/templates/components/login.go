package components

import (
	"github.com/nfrund/regdesk/internal/view/dto"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// LoginWidget shows the sign-in button, or the account avatar once the
// identity provider's session cookie is present.
func LoginWidget(data dto.LoginData) cmp.Node {
	if !data.SignedIn {
		return g.A(
			g.ID("login-widget"),
			g.Class("btn btn-primary btn-pill"),
			g.Href(data.SignInURL),
			cmp.Text("INICIAR SESIÓN"),
		)
	}
	return g.A(
		g.ID("login-widget"),
		g.Class("avatar"),
		g.Href(data.AccountURL),
		g.Aria("label", "Mi cuenta"),
		g.Span(g.Class("avatar-box")),
	)
}
