package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// HomeContent is the landing page.
func HomeContent() cmp.Node {
	return g.Section(
		g.Class("hero"),
		g.H1(g.Class("title"), cmp.Text("Hackathon Frontend")),
		g.P(g.Class("muted"), cmp.Text("Reserva tu lugar en el próximo evento.")),
		g.A(g.Class("btn btn-primary"), g.Href("/registro"), cmp.Text("Registrarme")),
	)
}
