package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chaigney/golftrip/internal/models"
)

const secret = "test-secret"

func TestRoomTokenRoundTrip(t *testing.T) {
	token, err := GenerateRoomToken("trip-1", "device-9", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateRoomToken(token, secret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TripID != "trip-1" || claims.DeviceID != "device-9" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRoomTokenRejectsTampering(t *testing.T) {
	token, _ := GenerateRoomToken("trip-1", "device-9", secret)

	if _, err := ValidateRoomToken(token, "other-secret"); err == nil {
		t.Fatal("wrong secret should fail")
	}
	if _, err := ValidateRoomToken(token+"x", secret); err == nil {
		t.Fatal("mangled signature should fail")
	}
	if _, err := ValidateRoomToken("local.abc.def", secret); err == nil {
		t.Fatal("wrong prefix should fail")
	}
}

func TestPinHashing(t *testing.T) {
	hash, err := HashPin("4321")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "4321" {
		t.Fatal("pin stored in the clear")
	}
	if !CheckPin(hash, "4321") {
		t.Fatal("correct pin rejected")
	}
	if CheckPin(hash, "1234") {
		t.Fatal("wrong pin accepted")
	}
	if _, err := HashPin(""); err == nil {
		t.Fatal("empty pin should be rejected")
	}
}

func TestCanAccess(t *testing.T) {
	open := &models.Trip{ID: "trip-1"}
	locked := &models.Trip{ID: "trip-1", PinEnabled: true, OwnerDeviceID: "owner-device"}

	token, _ := GenerateRoomToken("trip-1", "guest-device", secret)
	otherToken, _ := GenerateRoomToken("trip-2", "guest-device", secret)

	tests := []struct {
		name   string
		trip   *models.Trip
		device string
		token  string
		want   bool
	}{
		{"open room admits anyone", open, "", "", true},
		{"locked room rejects anonymous", locked, "", "", false},
		{"owner device bypasses pin", locked, "owner-device", "", true},
		{"valid token admits guest", locked, "guest-device", token, true},
		{"token for another trip rejected", locked, "guest-device", otherToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := contextFor(t, tt.device, tt.token)
			if got := CanAccess(ctx, tt.trip); got != tt.want {
				t.Fatalf("CanAccess = %v, want %v", got, tt.want)
			}
		})
	}
}

func contextFor(t *testing.T, device, token string) context.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if device != "" {
		req.Header.Set(DeviceHeader, device)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var captured context.Context
	handler := Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return captured
}
