// Package flash carries one-shot notification messages across a redirect.
//
// A handler that finishes a POST sets a message, redirects, and the next
// page render pops it. Messages ride in a short-lived signed cookie so
// they survive the redirect without touching the session store.
package flash

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const cookieName = "vh_flash"

// Message kinds, mapped to styling in the shared layout.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

// Message is a single one-shot notification.
type Message struct {
	Kind string
	Text string
}

// Codec signs and encodes flash cookies.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec builds a flash codec from the session key. Flash cookies are
// signed but not encrypted; they carry no secrets.
func NewCodec(sessionKey string) *Codec {
	sc := securecookie.New([]byte(sessionKey), nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(300)
	return &Codec{sc: sc}
}

// Set queues a message for the next page render.
func (c *Codec) Set(w http.ResponseWriter, kind, text string) {
	encoded, err := c.sc.Encode(cookieName, Message{Kind: kind, Text: text})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Success queues a success message.
func (c *Codec) Success(w http.ResponseWriter, text string) {
	c.Set(w, KindSuccess, text)
}

// Error queues an error message.
func (c *Codec) Error(w http.ResponseWriter, text string) {
	c.Set(w, KindError, text)
}

// Pop returns the queued message, if any, and clears the cookie.
// A cookie that fails to decode is treated as absent.
func (c *Codec) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Message{}, false
	}

	// Clear regardless of decode outcome.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var msg Message
	if err := c.sc.Decode(cookieName, cookie.Value, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}
