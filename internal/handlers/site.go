package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/regdesk/internal/view/dto"
)

// clerkSessionCookie is set by the identity provider's frontend once the
// visitor is signed in.
const clerkSessionCookie = "__session"

// Site carries the values every full page needs for its header.
type Site struct {
	SignInURL  string
	AccountURL string
}

// Login derives the login widget state from the request. Only the
// presence of the session cookie is checked; nothing is validated.
func (s Site) Login(c echo.Context) dto.LoginData {
	cookie, err := c.Cookie(clerkSessionCookie)
	return dto.LoginData{
		SignedIn:   err == nil && cookie.Value != "",
		SignInURL:  s.SignInURL,
		AccountURL: s.AccountURL,
	}
}
