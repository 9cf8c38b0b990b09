package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chaigney/golftrip/internal/models"
)

// RoomClaims identifies a device that unlocked a PIN-protected trip.
type RoomClaims struct {
	TripID   string `json:"tripId"`
	DeviceID string `json:"deviceId"`
	Exp      int64  `json:"exp"`
}

type contextKey string

const (
	deviceKey contextKey = "device"
	claimsKey contextKey = "roomClaims"
)

// DeviceHeader carries the caller's opaque device identity.
const DeviceHeader = "X-Device-Id"

// HashPin hashes a room PIN for storage in the trip document.
func HashPin(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("pin must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing pin: %w", err)
	}
	return string(hash), nil
}

// CheckPin verifies a PIN attempt against the stored hash.
func CheckPin(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// GenerateRoomToken creates an HMAC-signed token proving a device unlocked a
// trip. Format: room.<base64url(json-payload)>.<base64url(hmac-sha256)>
func GenerateRoomToken(tripID, deviceID, secret string) (string, error) {
	claims := RoomClaims{
		TripID:   tripID,
		DeviceID: deviceID,
		Exp:      time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	payloadBytes, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	payloadB64 := base64.RawURLEncoding.EncodeToString(payloadBytes)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return "room." + payloadB64 + "." + sig, nil
}

// ValidateRoomToken verifies and decodes a room token.
func ValidateRoomToken(token, secret string) (*RoomClaims, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 || parts[0] != "room" {
		return nil, fmt.Errorf("invalid token format")
	}

	payloadB64 := parts[1]
	sigB64 := parts[2]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	expectedSig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(sigB64), []byte(expectedSig)) {
		return nil, fmt.Errorf("invalid token signature")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return nil, fmt.Errorf("invalid token payload")
	}

	var claims RoomClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, fmt.Errorf("invalid token payload")
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return &claims, nil
}

// Middleware extracts the device id and any room token into the request
// context. It never rejects: access is decided per trip, because an open
// room needs no token at all.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if device := r.Header.Get(DeviceHeader); device != "" {
				ctx = context.WithValue(ctx, deviceKey, device)
			}
			if header := r.Header.Get("Authorization"); header != "" {
				token := strings.TrimPrefix(header, "Bearer ")
				if claims, err := ValidateRoomToken(token, secret); err == nil {
					ctx = context.WithValue(ctx, claimsKey, claims)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Device returns the caller's device id, "" when none was sent.
func Device(ctx context.Context) string {
	device, _ := ctx.Value(deviceKey).(string)
	return device
}

// Claims returns validated room claims from the context, nil when absent.
func Claims(ctx context.Context) *RoomClaims {
	claims, _ := ctx.Value(claimsKey).(*RoomClaims)
	return claims
}

// CanAccess decides whether the caller may read or edit a trip: open rooms
// admit anyone, the owning device is always admitted, and otherwise a valid
// room token for this trip is required.
func CanAccess(ctx context.Context, trip *models.Trip) bool {
	if !trip.PinEnabled {
		return true
	}
	if device := Device(ctx); device != "" && device == trip.OwnerDeviceID {
		return true
	}
	claims := Claims(ctx)
	return claims != nil && claims.TripID == trip.ID
}

// IsOwner reports whether the caller is the trip's owning device.
func IsOwner(ctx context.Context, trip *models.Trip) bool {
	device := Device(ctx)
	return device != "" && device == trip.OwnerDeviceID
}
