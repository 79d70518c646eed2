package middleware

import "context"

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLang ctxKey = "lang"

// WithLang stores the resolved language in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// Lang returns the resolved language, or "" when unset.
func Lang(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyLang).(string)
	return v
}
