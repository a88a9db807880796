package pages

import (
	"github.com/nfrund/regdesk/internal/view/dto"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// RegistrationCardID is the element htmx swaps after a POST.
const RegistrationCardID = "registration-card"

// RegistrationForm renders the attendee form card. It is both the body of
// GET /registro and the fragment returned to htmx on a failed POST.
func RegistrationForm(data dto.RegistrationData) cmp.Node {
	return g.Div(
		g.ID(RegistrationCardID),
		g.Class("card"),
		g.H2(g.Class("card-title"), cmp.Text("Registro de Asistencia")),
		g.Form(
			g.Method("post"),
			g.Action("/registro"),
			hx.Post("/registro"),
			hx.Target("#"+RegistrationCardID),
			hx.Swap("outerHTML"),
			g.Class("stack"),

			fieldError(data, "form"),
			selectField(data, "eventId", "Selecciona el Evento *", "-- Elige un evento --", data.Events),
			g.Div(
				g.Class("grid-2"),
				inputField(data, "fullName", "Nombre Completo *", "text", ""),
				selectField(data, "group", "Grupo / Semestre *", "Selecciona", data.Groups),
			),
			inputField(data, "email", "Correo Electrónico *", "email", "nombre@ejemplo.com"),
			inputField(data, "phone", "Teléfono *", "tel", ""),
			g.Button(
				g.Type("submit"),
				g.Class("btn btn-primary btn-block"),
				cmp.Text("Confirmar Asistencia"),
			),
		),
	)
}

// RegistrationClosed replaces the form while registration is closed.
func RegistrationClosed() cmp.Node {
	return g.Div(
		g.ID(RegistrationCardID),
		g.Class("card card-closed"),
		g.H3(cmp.Text("Registro Cerrado")),
		g.P(g.Class("muted"), cmp.Text("Lo sentimos, el período de registro para este evento ha finalizado.")),
	)
}

// RegistrationSuccess is shown after a successful registration.
func RegistrationSuccess() cmp.Node {
	return g.Div(
		g.ID(RegistrationCardID),
		g.Class("card card-success"),
		g.H3(cmp.Text("¡Registro Exitoso!")),
		g.P(g.Class("muted"), cmp.Text("Tu lugar ha sido reservado correctamente.")),
		g.A(g.Class("btn"), g.Href("/"), cmp.Text("Volver al Inicio")),
	)
}

func inputField(data dto.RegistrationData, name, label, inputType, placeholder string) cmp.Node {
	msg := data.Error(name)
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(
			g.ID(name),
			g.Name(name),
			g.Type(inputType),
			g.Value(data.Value(name)),
			cmp.If(placeholder != "", g.Placeholder(placeholder)),
			cmp.If(msg != "", g.Class("invalid")),
		),
		fieldError(data, name),
	)
}

func selectField(data dto.RegistrationData, name, label, placeholder string, options []dto.Option) cmp.Node {
	current := data.Value(name)
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Select(
			g.ID(name),
			g.Name(name),
			cmp.If(data.Error(name) != "", g.Class("invalid")),
			g.Option(g.Value(""), cmp.Text(placeholder)),
			cmp.Map(options, func(o dto.Option) cmp.Node {
				return g.Option(g.Value(o.Value), cmp.If(o.Value == current, g.Selected()), cmp.Text(o.Label))
			}),
		),
		fieldError(data, name),
	)
}

func fieldError(data dto.RegistrationData, name string) cmp.Node {
	msg := data.Error(name)
	if msg == "" {
		return nil
	}
	return g.P(g.Class("field-error"), g.Data("field", name), cmp.Text(msg))
}
