package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Middleware runs before a handler. It can enrich the request context or
// abort the request by returning an error.
type Middleware func(ctx context.Context, r *http.Request) (context.Context, error)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

type Router struct {
	Inner gin.IRouter

	ctx    context.Context
	engine *gin.Engine
	before []Middleware
}

// New creates a router. The given context is the base of every request
// context and should carry the database, configs, and logger.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	return &Router{Inner: engine, engine: engine, ctx: ctx}
}

func (r *Router) Before(m Middleware) {
	r.before = append(r.before, m)
}

// Branch returns a router registering on the same engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	before := make([]Middleware, len(r.before))
	copy(before, r.before)
	return &Router{Inner: r.Inner, engine: r.engine, ctx: r.ctx, before: before}
}

func (r *Router) Handler() http.Handler {
	return cors.Default().Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, handler, bindQuery[Request]))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, handler, bindJSON[Request]))
}
