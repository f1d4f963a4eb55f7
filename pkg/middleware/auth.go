package middleware

import (
	"context"
	"net/http"
	"strings"

	"nomadnest/pkg/jwt"
	"nomadnest/pkg/logger"
	"nomadnest/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("gate")

const (
	ContextEmailKey = "user_email"
	ContextAdminKey = "user_admin"
)

// Policy is the access requirement a route declares.
type Policy int

const (
	Public Policy = iota
	RequireAuth
	RequireAdmin
)

func (p Policy) String() string {
	switch p {
	case RequireAuth:
		return "auth"
	case RequireAdmin:
		return "admin"
	default:
		return "public"
	}
}

type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type RoleResolver interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Gate turns a Policy into the handler chain that enforces it.
type Gate struct {
	verifier TokenVerifier
	roles    RoleResolver
	cookie   string
	logger   *logger.Logger
}

func NewGate(verifier TokenVerifier, roles RoleResolver, cookieName string, log *logger.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		roles:    roles,
		cookie:   cookieName,
		logger:   log,
	}
}

func (g *Gate) For(p Policy) []gin.HandlerFunc {
	switch p {
	case RequireAuth:
		return []gin.HandlerFunc{g.Authenticate(p)}
	case RequireAdmin:
		return []gin.HandlerFunc{g.Authenticate(p), g.AdminOnly()}
	default:
		return nil
	}
}

// Authenticate verifies the credential and stores the caller's email.
func (g *Gate) Authenticate(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "Gate.RequireAuth",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("gate.policy", p.String())),
		)
		defer span.End()

		token := g.extractToken(c)
		if token == "" {
			span.RecordError(jwt.ErrEmptyToken)
			g.reject(c, p, http.StatusUnauthorized, "missing credential")
			return
		}

		claims, err := g.verifier.ValidateToken(token)
		if err != nil {
			span.RecordError(err)
			g.reject(c, p, http.StatusUnauthorized, err.Error())
			return
		}

		span.SetAttributes(attribute.String("caller", claims.Email))
		c.Set(ContextEmailKey, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminOnly re-reads the caller's role from the store on every request.
func (g *Gate) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "Gate.RequireAdmin",
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		email := c.GetString(ContextEmailKey)
		if email == "" {
			g.reject(c, RequireAdmin, http.StatusUnauthorized, "admin check without identity")
			return
		}

		isAdmin, err := g.roles.IsAdmin(ctx, email)
		if err != nil {
			span.RecordError(err)
			g.logger.Error("Role lookup failed for %s: %v", email, err)
			metrics.GateRejections.WithLabelValues(RequireAdmin.String(), "upstream").Inc()
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !isAdmin {
			g.reject(c, RequireAdmin, http.StatusForbidden, "role is not admin")
			return
		}

		c.Set(ContextAdminKey, true)
		c.Next()
	}
}

func (g *Gate) extractToken(c *gin.Context) string {
	if token, err := c.Cookie(g.cookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (g *Gate) reject(c *gin.Context, p Policy, status int, reason string) {
	outcome := "unauthenticated"
	message := "unauthorized access"
	if status == http.StatusForbidden {
		outcome = "forbidden"
		message = "forbidden access"
	}

	g.logger.Warn("Gate %s rejected %s %s: %s", p, c.Request.Method, c.Request.URL.Path, reason)
	metrics.GateRejections.WithLabelValues(p.String(), outcome).Inc()
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// CallerEmail returns the identity attached by Authenticate.
func CallerEmail(c *gin.Context) string {
	return c.GetString(ContextEmailKey)
}

// CallerIsAdmin reports whether AdminOnly already admitted the request.
func CallerIsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextAdminKey)
}
