package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/edgeap/edgeap/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

type claimsKey struct{}

// GetAuthMiddleware admits requests carrying an RS256 bearer token signed by
// the configured key. Without a key every guarded route is forbidden.
func (h *Handler) GetAuthMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if h.jwtPublicKey == nil {
				h.ErrorResponse(ctx, w, http.StatusForbidden, "Admin operations are disabled", nil)
				return
			}
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Missing Authorization header", nil)
				return
			}
			const bearerPrefix = "Bearer "
			if len(tokenString) <= len(bearerPrefix) || !strings.EqualFold(tokenString[:len(bearerPrefix)], bearerPrefix) {
				h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Invalid Authorization header format", nil)
				return
			}
			claims, err := h.validateJWT(tokenString[len(bearerPrefix):])
			if err != nil {
				h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Invalid token", err)
				return
			}
			log := logger.Logger(ctx).With().Str("subject", claims.Subject).Logger()
			ctx = context.WithValue(log.WithContext(ctx), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.jwtPublicKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ClaimsFromContext returns the verified token claims of an admin request.
func ClaimsFromContext(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.RegisteredClaims)
	return claims, ok
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = xid.New().String()
		}
		start := time.Now()
		log := logger.Logger(ctx).With().
			Str("method", r.Method).Str("req_id", reqID).
			Str("url", r.URL.String()).Str("remote_addr", r.RemoteAddr).Logger()

		responseWriter := NewResponseWriter(w)
		responseWriter.Header().Set("X-Request-ID", reqID)
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("panic", err).Msgf("Recovered from panic, stack trace: %s", string(debug.Stack()))
				http.Error(responseWriter, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(responseWriter, r.WithContext(log.WithContext(ctx)))
		log = log.With().
			Int("cost_msec", int(time.Since(start).Milliseconds())).
			Int("status_code", responseWriter.statusCode).
			Logger()
		switch {
		case responseWriter.statusCode >= 500:
			log.Error().Str("response_body", responseWriter.responseBody.String()).Msg("Request completed with server error")
		case responseWriter.statusCode >= 400:
			log.Warn().Str("response_body", responseWriter.responseBody.String()).Msg("Request completed with client error")
		default:
			log.Info().Msg("Request completed successfully")
		}
	})
}

type responseWriter struct {
	http.ResponseWriter
	responseBody bytes.Buffer
	statusCode   int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write keeps only error bodies for the request log.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= 400 {
		rw.responseBody.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}
