package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
)

func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			public := false
			if s, ok := publicEndpoints[r.Method]; ok {
				_, public = s[path]
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if public {
				// Public endpoints still honor a valid token so they
				// can personalize the response; a bad one is ignored.
				if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
					if claims, err := verifier.Verify(p[1]); err == nil {
						r = r.WithContext(jwt.SetAuth(r.Context(), claims))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
