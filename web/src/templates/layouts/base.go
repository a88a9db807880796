package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/regdesk/internal/view"
	"github.com/nfrund/regdesk/internal/view/dto"
	"github.com/nfrund/regdesk/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the site chrome: head, header with the login
// widget, flash messages and footer.
func Base(title string, flashes view.FlashData, login dto.LoginData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return g.Doctype(
			g.HTML(
				g.Lang("es"),
				g.Head(
					g.Meta(g.Charset("utf-8")),
					g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
					g.TitleEl(cmp.Text(CalculateTitle(title))),
					g.Link(g.Rel("stylesheet"), g.Href("/static/site.css")),
					g.Script(g.Src(htmxSrc), g.Defer()),
				),
				g.Body(
					g.Header(
						g.Class("site-header"),
						g.A(g.Href("/"), g.Class("brand"), cmp.Text("Regdesk")),
						components.LoginWidget(login),
					),
					flashMessages(flashes),
					g.Main(
						g.Class("container"),
						view.AdaptTemplToGomponent(ctx, content),
					),
				),
			),
		).Render(w)
	})
}

func flashMessages(flashes view.FlashData) cmp.Node {
	if flashes.Empty() {
		return nil
	}
	return g.Div(
		g.ID("flash"),
		g.Class("flash-container"),
		cmp.Map(flashes.Success, func(msg string) cmp.Node {
			return g.Div(g.Class("flash flash-success"), g.Role("status"), cmp.Text(msg))
		}),
		cmp.Map(flashes.Error, func(msg string) cmp.Node {
			return g.Div(g.Class("flash flash-error"), g.Role("alert"), cmp.Text(msg))
		}),
	)
}
