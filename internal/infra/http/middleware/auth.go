package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/jatinenterprises/site-backend/internal/infra/auth"
	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
)

type contextKey string

const viewerKey contextKey = "viewer"

// WithViewer resolves the bearer token (if any) into a viewer and hangs
// it on the request context. Anonymous requests pass through with a nil
// viewer; the authorization decision belongs to the console, not here.
func WithViewer(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			viewer, err := gate.ResolveViewer(r.Context(), token)
			if err != nil {
				log.Printf("[auth] token lookup failed: %v", err)
				RecordIntegrationError("identity")
				viewer = nil
			}

			ctx := context.WithValue(r.Context(), viewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerFromContext returns the resolved viewer, nil when anonymous.
func ViewerFromContext(ctx context.Context) *identity.Viewer {
	viewer, _ := ctx.Value(viewerKey).(*identity.Viewer)
	return viewer
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
