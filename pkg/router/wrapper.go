package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	handler HandlerFunc[Request, Response],
	bind func(*gin.Context, *Request) error,
) gin.HandlerFunc {
	before := router.before

	return func(c *gin.Context) {
		ctx := router.ctx
		for _, m := range before {
			var err error
			ctx, err = m(ctx, c.Request)
			if err != nil {
				writeError(c, err)
				return
			}
		}

		var req Request
		if err := bind(c, &req); err != nil {
			writeError(c, errorx.New(errorx.BadRequest, "Cannot parse the request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Request %s failed: %v", c.FullPath(), err)
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, response{Success: true, Data: resp})
	}
}

func bindQuery[Request any](c *gin.Context, req *Request) error {
	return c.ShouldBindQuery(req)
}

func bindJSON[Request any](c *gin.Context, req *Request) error {
	// Interaction commands without arguments post an empty body.
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}

	return c.ShouldBindJSON(req)
}

type response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errDetail `json:"error,omitempty"`
}

type errDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	xerr, ok := err.(errorx.Error)
	if !ok {
		xerr = errorx.Unknown
	}

	c.JSON(http.StatusOK, response{Error: &errDetail{Code: int(xerr.Code), Message: xerr.Message}})
}
