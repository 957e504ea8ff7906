package api

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const authRealm = `Basic realm="audiobridge"`

// checkCredentials validates a basic auth header, falling back to the
// base64 "auth" query value. It returns the rejection message, or "" when
// the credentials match.
func checkCredentials(header, query, username, password string) string {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		encoded = query
	}
	if encoded == "" {
		return "Authentication required"
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "Invalid credentials format"
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "Invalid credentials format"
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
	if !userOK || !passOK {
		return "Invalid credentials"
	}
	return ""
}

// basicAuthMiddleware enforces credentials on operations that declare a
// security requirement. The event stream may pass them base64-encoded in the
// "auth" query parameter since EventSource cannot set headers.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}
		if msg := checkCredentials(ctx.Header("Authorization"), ctx.Query("auth"), username, password); msg != "" {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			_ = huma.WriteErr(s.api, ctx, http.StatusUnauthorized, msg)
			return
		}
		next(ctx)
	}
}

// requireBasicAuth guards plain handlers mounted outside the huma API.
func requireBasicAuth(next http.Handler, username, password string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if msg := checkCredentials(r.Header.Get("Authorization"), r.URL.Query().Get("auth"), username, password); msg != "" {
			w.Header().Set("WWW-Authenticate", authRealm)
			http.Error(w, msg, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
