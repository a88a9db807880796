package email

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Confirmation is the message sent after a successful registration.
type Confirmation struct {
	FullName  string
	EventName string
}

// Subject returns the subject line.
func (c Confirmation) Subject() string {
	return "Registro confirmado: " + c.EventName
}

// HTML renders the body.
func (c Confirmation) HTML() (string, error) {
	var b strings.Builder
	body := h.Div(
		h.H1(g.Text("¡Registro exitoso!")),
		h.P(g.Textf("Hola %s,", c.FullName)),
		h.P(
			g.Text("Tu registro para "),
			h.Strong(g.Text(c.EventName)),
			g.Text(" quedó confirmado."),
		),
		h.P(g.Text("Nos vemos pronto.")),
	)
	if err := body.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}
