package auth // package auth implements token signing and verification for the three actor roles

import (
    "crypto/rand"  // secure random number generation for refresh tokens
    "math/big"     // arbitrary-precision ints for unbiased random indexing
    "time"         // expiration handling

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// The three actor kinds sharing one token format.  The role claim embedded
// in every token is what keeps a token signed for one kind from ever being
// accepted by a verifier expecting another, even though all three share the
// same signing secret.
const (
    RoleAdmin    = "admin"
    RoleProvider = "provedor"
    RoleUser     = "usuario"
)

// AdminPayload is the verified identity carried by an admin token.
type AdminPayload struct {
    AdminID uint64
}

// ProviderPayload is the verified identity carried by a reseller token.
type ProviderPayload struct {
    ProviderID uint64
}

// UserPayload is the verified identity carried by an end-user token.  It
// includes the owning reseller and the remote login name so downstream
// handlers can address the remote backend without another lookup.
type UserPayload struct {
    UserID        uint64
    ProviderID    uint64
    ProviderLogin string
}

// SignAdmin builds and signs an HS256 JWT for an administrator.
func SignAdmin(secret string, adminID uint64, ttl time.Duration) (string, error) {
    return sign(secret, jwt.MapClaims{"adminId": adminID, "role": RoleAdmin}, ttl)
}

// SignProvider builds and signs an HS256 JWT for a reseller.
func SignProvider(secret string, providerID uint64, ttl time.Duration) (string, error) {
    return sign(secret, jwt.MapClaims{"providerId": providerID, "role": RoleProvider}, ttl)
}

// SignUser builds and signs an HS256 JWT for an end user.
func SignUser(secret string, userID, providerID uint64, providerLogin string, ttl time.Duration) (string, error) {
    return sign(secret, jwt.MapClaims{
        "userId":        userID,
        "providerId":    providerID,
        "providerLogin": providerLogin,
        "role":          RoleUser,
    }, ttl)
}

// sign attaches exp/iat claims and signs with the shared secret.
func sign(secret string, claims jwt.MapClaims, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims["iat"] = now.Unix()
    claims["exp"] = now.Add(ttl).Unix()
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// VerifyAdmin validates an admin token.  It returns nil and false on an
// expired token, a bad signature, a wrong role tag or a malformed token —
// all indistinguishable from having no token at all.
func VerifyAdmin(secret, token string) (*AdminPayload, bool) {
    claims, ok := verify(secret, token, RoleAdmin)
    if !ok {
        return nil, false
    }
    id, ok := claimUint64(claims, "adminId")
    if !ok {
        return nil, false
    }
    return &AdminPayload{AdminID: id}, true
}

// VerifyProvider validates a reseller token.
func VerifyProvider(secret, token string) (*ProviderPayload, bool) {
    claims, ok := verify(secret, token, RoleProvider)
    if !ok {
        return nil, false
    }
    id, ok := claimUint64(claims, "providerId")
    if !ok {
        return nil, false
    }
    return &ProviderPayload{ProviderID: id}, true
}

// VerifyUser validates an end-user token.
func VerifyUser(secret, token string) (*UserPayload, bool) {
    claims, ok := verify(secret, token, RoleUser)
    if !ok {
        return nil, false
    }
    userID, ok := claimUint64(claims, "userId")
    if !ok {
        return nil, false
    }
    providerID, ok := claimUint64(claims, "providerId")
    if !ok {
        return nil, false
    }
    login, _ := claims["providerLogin"].(string)
    return &UserPayload{UserID: userID, ProviderID: providerID, ProviderLogin: login}, true
}

// verify parses the token, enforcing the HMAC signing method and the
// expected role claim.
func verify(secret, token, wantRole string) (jwt.MapClaims, bool) {
    tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return nil, false
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return nil, false
    }
    if role, _ := claims["role"].(string); role != wantRole {
        return nil, false
    }
    return claims, true
}

// claimUint64 reads a numeric claim.  JSON numbers decode as float64.
func claimUint64(claims jwt.MapClaims, key string) (uint64, bool) {
    f, ok := claims[key].(float64)
    if !ok || f < 0 {
        return 0, false
    }
    return uint64(f), true
}

// refreshAlphabet is the uniform alphabet refresh tokens draw from.
const refreshAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// refreshLength is the fixed length of a refresh token string.
const refreshLength = 64

// NewRefreshToken returns a 64-character opaque token drawn uniformly from
// upper/lower letters and digits using crypto/rand.  Collisions across the
// token space are astronomically unlikely and are not checked against
// existing rows before insertion; the UNIQUE column surfaces one as an
// insert error should it ever happen.
func NewRefreshToken() (string, error) {
    out := make([]byte, refreshLength)
    max := big.NewInt(int64(len(refreshAlphabet)))
    for i := range out {
        n, err := rand.Int(rand.Reader, max)
        if err != nil {
            return "", err
        }
        out[i] = refreshAlphabet[n.Int64()]
    }
    return string(out), nil
}
