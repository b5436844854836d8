package middleware

import "net/http"

// AccessGate guards the pages: visitors without a session are sent to
// /login, and signed-in visitors have no business on /login.
func AccessGate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := ParseUserID(TokenFromRequest(r), secret)
			authenticated := err == nil

			switch {
			case !authenticated && r.URL.Path != "/login":
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case authenticated && r.URL.Path == "/login":
				http.Redirect(w, r, "/", http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
