package restapi

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"communityconnect.org/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// Incoming ids are reused only when they are short and plain.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestIDMiddleware tags every request with an id, taken from the
// X-Request-ID header when the client sent a usable one and generated
// otherwise. The id is echoed in the response and stored in the context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}
