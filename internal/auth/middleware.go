package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const securityContextKey = "auth_security_context"

// IdentityMiddleware resolves the caller of every request.
// It never rejects; guards in roles.go enforce route policy.
type IdentityMiddleware struct {
	resolver *RequestIdentityResolver
	now      func() time.Time
}

// NewIdentityMiddleware constructs middleware. A nil clock selects time.Now.
func NewIdentityMiddleware(resolver *RequestIdentityResolver, now func() time.Time) *IdentityMiddleware {
	if now == nil {
		now = time.Now
	}
	return &IdentityMiddleware{resolver: resolver, now: now}
}

// Handle attaches the request's SecurityContext and continues.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	sc := m.resolver.Resolve(fiberHeaders{c: c}, m.now())
	c.Locals(securityContextKey, sc)
	return c.Next()
}

// SecurityContextFrom returns the context attached by IdentityMiddleware.
func SecurityContextFrom(c *fiber.Ctx) SecurityContext {
	sc, ok := c.Locals(securityContextKey).(SecurityContext)
	if !ok {
		return Anonymous()
	}
	return sc
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (Principal, bool) {
	return SecurityContextFrom(c).Principal()
}

type fiberHeaders struct {
	c *fiber.Ctx
}

func (h fiberHeaders) Get(key string) string {
	return h.c.Get(key)
}
