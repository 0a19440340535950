package middleware

import (
	"net/http"
	"time"

	jwtutil "jewel-lending/backend/app/jwt"
	"jewel-lending/backend/app/models"
	"jewel-lending/backend/app/session"
	"jewel-lending/backend/global"

	"github.com/google/uuid"
)

// Sessions binds the session cookie to a request-scoped identity and owns the flash queue.
type Sessions struct {
	Signer      *jwtutil.Signer
	Store       session.Store
	Cookie      string
	FlashCookie string
	Secure      bool
}

func (s *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := &requestState{identity: s.identify(r)}
		if c, err := r.Cookie(s.FlashCookie); err == nil && c.Value != "" {
			st.flashKey = c.Value
		} else {
			st.flashKey = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name: s.FlashCookie, Value: st.flashKey, Path: "/",
				HttpOnly: true, Secure: s.Secure, SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(withState(r.Context(), st)))
	})
}

func (s *Sessions) identify(r *http.Request) *session.Identity {
	c, err := r.Cookie(s.Cookie)
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := s.Signer.Parse(c.Value)
	if err != nil {
		return nil
	}
	revoked, err := s.Store.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		global.Logger.Warn().Err(err).Msg("session revocation lookup")
		return nil
	}
	if revoked {
		return nil
	}
	id := &session.Identity{UserID: claims.UserID, Role: claims.Role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

// Login issues a session token for u and sets it as an HttpOnly cookie.
func (s *Sessions) Login(w http.ResponseWriter, u *models.User) error {
	token, claims, err := s.Signer.Sign(u.ID, u.Role)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: s.Cookie, Value: token, Path: "/",
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true, Secure: s.Secure, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout revokes the current token for the rest of its lifetime and clears the cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name: s.Cookie, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, Secure: s.Secure, SameSite: http.SameSiteLaxMode,
	})
	id := FromContext(r.Context())
	if id == nil || id.TokenID == "" {
		return nil
	}
	return s.Store.Revoke(r.Context(), id.TokenID, time.Until(id.ExpiresAt))
}

// Flash queues msg for the next rendered page of this browser.
func (s *Sessions) Flash(r *http.Request, msg string) {
	st := stateFrom(r.Context())
	if st == nil {
		return
	}
	if err := s.Store.AddFlash(r.Context(), st.flashKey, msg); err != nil {
		global.Logger.Warn().Err(err).Msg("add flash")
	}
}

// Flashes drains the queued messages.
func (s *Sessions) Flashes(r *http.Request) []string {
	st := stateFrom(r.Context())
	if st == nil {
		return nil
	}
	msgs, err := s.Store.PopFlashes(r.Context(), st.flashKey)
	if err != nil {
		global.Logger.Warn().Err(err).Msg("pop flashes")
		return nil
	}
	return msgs
}
