package auth

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// AuthorizationHeader carries the bearer credential.
	AuthorizationHeader = "Authorization"
	// DefaultBearerPrefix is the scheme marker expected before the token.
	DefaultBearerPrefix = "Bearer "
)

// Headers is the read side of request metadata. http.Header satisfies it.
type Headers interface {
	Get(key string) string
}

// TokenAuthenticator validates a bearer token.
type TokenAuthenticator interface {
	AuthenticateToken(tokenString string, now time.Time) (Principal, error)
}

// RejectionRecorder counts rejected credentials by reason.
type RejectionRecorder interface {
	RecordAuthRejection(reason string)
}

// SecurityContext is the per-request outcome of identity resolution.
type SecurityContext struct {
	principal *Principal
}

// Anonymous returns a context without identity.
func Anonymous() SecurityContext {
	return SecurityContext{}
}

// Authenticated returns a context carrying p.
func Authenticated(p Principal) SecurityContext {
	return SecurityContext{principal: &p}
}

// IsAuthenticated reports whether a principal was resolved.
func (s SecurityContext) IsAuthenticated() bool {
	return s.principal != nil
}

// Principal returns the resolved principal, if any.
func (s SecurityContext) Principal() (Principal, bool) {
	if s.principal == nil {
		return Principal{}, false
	}
	return *s.principal, true
}

// RequestIdentityResolver maps request headers to a SecurityContext.
// Failures fall back to Anonymous; route policy decides what anonymous may do.
type RequestIdentityResolver struct {
	authenticator TokenAuthenticator
	prefix        string
	logger        *zap.Logger
	rejections    RejectionRecorder
}

// NewRequestIdentityResolver constructs a resolver. An empty prefix selects DefaultBearerPrefix.
func NewRequestIdentityResolver(authenticator TokenAuthenticator, prefix string, logger *zap.Logger, rejections RejectionRecorder) *RequestIdentityResolver {
	if prefix == "" {
		prefix = DefaultBearerPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestIdentityResolver{
		authenticator: authenticator,
		prefix:        prefix,
		logger:        logger,
		rejections:    rejections,
	}
}

// Resolve never fails; rejected or absent credentials resolve to Anonymous.
func (r *RequestIdentityResolver) Resolve(headers Headers, now time.Time) SecurityContext {
	header := headers.Get(AuthorizationHeader)
	if header == "" {
		return Anonymous()
	}
	if !strings.HasPrefix(header, r.prefix) {
		r.logger.Debug("authorization header without bearer prefix, ignoring")
		return Anonymous()
	}

	principal, err := r.authenticator.AuthenticateToken(strings.TrimPrefix(header, r.prefix), now)
	if err != nil {
		reason, ok := ReasonOf(err)
		if !ok {
			reason = ReasonMalformed
		}
		r.logger.Debug("bearer token rejected", zap.String("reason", string(reason)))
		if r.rejections != nil {
			r.rejections.RecordAuthRejection(string(reason))
		}
		return Anonymous()
	}
	return Authenticated(principal)
}
