package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"

	"github.com/lcalzada-xor/wdash/internal/core/services/audit"
	"golang.org/x/crypto/bcrypt"
)

const realm = `Basic realm="wdash"`

// BasicAuthMiddleware checks HTTP basic credentials against the configured
// admin user and bcrypt hash, and records the caller for the audit trail.
// An empty hash disables the check; callers are then audited as "anonymous".
func BasicAuthMiddleware(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := audit.Actor{Username: "anonymous", IPAddress: ClientIP(r)}

			if passwordHash != "" {
				user, pass, ok := r.BasicAuth()
				if !ok || !validCredentials(user, pass, username, passwordHash) {
					slog.Warn("authentication failed", "user", user, "ip", actor.IPAddress)
					w.Header().Set("WWW-Authenticate", realm)
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				actor.Username = user
			}

			next.ServeHTTP(w, r.WithContext(audit.WithActor(r.Context(), actor)))
		})
	}
}

func validCredentials(user, pass, wantUser, hash string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return userOK && passErr == nil
}

// ClientIP returns the remote address without its port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
