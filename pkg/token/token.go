package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cliniquehq/clinique_backend/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Config struct {
	Issuer    string
	AccessTTL time.Duration
}

// Manager issues and verifies HMAC-signed access tokens.
type Manager struct {
	cfg Config
	key []byte
}

func New(cfg Config, key []byte) (*Manager, error) {
	if len(key) == 0 {
		return nil, ErrConfig{Msg: "signing key is required"}
	}
	if cfg.Issuer == "" {
		return nil, ErrConfig{Msg: "Issuer is required"}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 60 * time.Minute
	}

	return &Manager{cfg: cfg, key: key}, nil
}

// NewManager creates a token manager from config.
// The configured secret must be base64-encoded.
func NewManager(cfg *config.Config) (*Manager, error) {
	j := cfg.Authentication.JWT

	key, err := base64.StdEncoding.DecodeString(j.Secret)
	if err != nil {
		return nil, ErrConfig{Msg: "secret must be base64: " + err.Error()}
	}

	return New(Config{
		Issuer:    j.Issuer,
		AccessTTL: time.Duration(j.AccessTTLMinutes) * time.Minute,
	}, key)
}

// IssueAccess creates a signed access token. The subject is the
// account's email address. profileID is the caller's profile row and
// may be uuid.Nil for accounts without one.
func (m *Manager) IssueAccess(userID uuid.UUID, email, role string, profileID uuid.UUID) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"iss":  m.cfg.Issuer,
		"sub":  email,
		"jti":  randHex(16),
		"iat":  now.Unix(),
		"exp":  now.Add(m.cfg.AccessTTL).Unix(),
		"uid":  userID.String(),
		"role": role,
	}
	if profileID != uuid.Nil {
		claims["pid"] = profileID.String()
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return m.key, nil
		},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken{Err: fmt.Errorf("unexpected claims type")}
	}

	return extractClaims(mc, m.cfg.Issuer)
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func extractClaims(mc jwt.MapClaims, iss string) (*Claims, error) {
	sub, err := mc.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	iat, err := mc.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken{Err: fmt.Errorf("missing expiration")}
	}

	out := &Claims{
		Email:     sub,
		Issuer:    iss,
		ExpiresAt: exp.Time,
	}
	if iat != nil {
		out.IssuedAt = iat.Time
	}
	if jti, ok := mc["jti"].(string); ok {
		out.TokenID = jti
	}

	uidStr, ok := mc["uid"].(string)
	if !ok {
		return nil, ErrInvalidToken{Err: fmt.Errorf("missing uid claim")}
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}
	out.UserID = uid

	role, ok := mc["role"].(string)
	if !ok {
		return nil, ErrInvalidToken{Err: fmt.Errorf("missing role claim")}
	}
	out.Role = role

	if pidStr, ok := mc["pid"].(string); ok {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			return nil, ErrInvalidToken{Err: err}
		}
		out.ProfileID = pid
	}

	return out, nil
}
