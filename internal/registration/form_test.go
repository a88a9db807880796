package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{
		FullName: "Ana Lee",
		Email:    "ana@example.com",
		Phone:    "+52 (55) 1234-5678",
		Group:    "301",
		EventID:  Events[0].ID,
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(NewMessages())

	tests := []struct {
		name   string
		mutate func(f *Form)
		want   FieldErrors
	}{
		{name: "valid form", mutate: func(f *Form) {}, want: nil},
		{name: "group is optional", mutate: func(f *Form) { f.Group = "" }, want: nil},
		{name: "blank name", mutate: func(f *Form) { f.FullName = "   " }, want: FieldErrors{"fullName": "El nombre es requerido"}},
		{name: "short name", mutate: func(f *Form) { f.FullName = " Al " }, want: FieldErrors{"fullName": "Mínimo 3 caracteres"}},
		{name: "blank email", mutate: func(f *Form) { f.Email = "" }, want: FieldErrors{"email": "El email es requerido"}},
		{name: "email without domain dot", mutate: func(f *Form) { f.Email = "ana@example" }, want: FieldErrors{"email": "Email inválido"}},
		{name: "blank phone", mutate: func(f *Form) { f.Phone = " " }, want: FieldErrors{"phone": "El teléfono es requerido"}},
		{name: "phone with letters", mutate: func(f *Form) { f.Phone = "55-CALL-NOW" }, want: FieldErrors{"phone": "Formato inválido"}},
		{name: "phone too short", mutate: func(f *Form) { f.Phone = "55 1234 567" }, want: FieldErrors{"phone": "Mínimo 10 dígitos"}},
		{name: "no event", mutate: func(f *Form) { f.EventID = "" }, want: FieldErrors{"eventId": "Debes seleccionar un evento"}},
		{
			name:   "several fields",
			mutate: func(f *Form) { f.FullName = ""; f.EventID = "" },
			want:   FieldErrors{"fullName": "El nombre es requerido", "eventId": "Debes seleccionar un evento"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			assert.Equal(t, tt.want, v.Validate(form, ""))
		})
	}
}

func TestValidator_English(t *testing.T) {
	v := NewValidator(NewMessages())
	form := validForm()
	form.Email = "nope"

	got := v.Validate(form, "en-US,en;q=0.9")
	assert.Equal(t, FieldErrors{"email": "Invalid email"}, got)
}
