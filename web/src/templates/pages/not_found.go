package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// NotFound is the custom 404 page.
func NotFound() cmp.Node {
	return g.Div(
		g.Class("not-found"),
		g.H2(cmp.Text("404 - Página no encontrada")),
		g.P(g.Class("muted"), cmp.Text("Lo sentimos, no pudimos encontrar el recurso que buscas.")),
		g.A(g.Class("btn btn-primary"), g.Href("/"), cmp.Text("Volver al Inicio")),
	)
}
