package middleware

import (
	"context"

	"jewel-lending/backend/app/session"
)

type ctxKey int

const stateKey ctxKey = 1

type requestState struct {
	identity *session.Identity
	flashKey string
}

// FromContext returns the authenticated caller, or nil for anonymous requests.
func FromContext(ctx context.Context) *session.Identity {
	if st := stateFrom(ctx); st != nil {
		return st.identity
	}
	return nil
}

func stateFrom(ctx context.Context) *requestState {
	if v := ctx.Value(stateKey); v != nil {
		if st, ok := v.(*requestState); ok {
			return st
		}
	}
	return nil
}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey, st)
}
