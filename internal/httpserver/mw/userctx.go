package mw

import (
	"context"
	"encoding/json"
	"net/http"
)

type ctxKey string

const (
	userIDKey   ctxKey = "marks.userID"
	userSlotKey ctxKey = "marks.userSlot"
)

// WithUserID stores the authenticated user ID in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	if slot, ok := ctx.Value(userSlotKey).(*userSlot); ok {
		slot.id = id
	}
	return context.WithValue(ctx, userIDKey, id)
}

// UserID fetches the authenticated user ID from ctx.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// userSlot lets the access log see a user resolved further down the chain.
type userSlot struct{ id string }

func withUserSlot(ctx context.Context, slot *userSlot) context.Context {
	return context.WithValue(ctx, userSlotKey, slot)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
