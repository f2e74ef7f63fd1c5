package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/delivery"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/domain/resolution"
	"github.com/buildwithgrove/mcp-gateway/middleware"
	"github.com/buildwithgrove/mcp-gateway/service/resolver"
)

type handler struct {
	resolver resolver.Resolver
}

func New(e *echo.Echo, resolver resolver.Resolver) {
	h := &handler{
		resolver,
	}

	g := e.Group("resolver")

	g.GET("/resolve/:name", h.Resolve)

	g.GET("/reverse-resolve/:address", h.ReverseResolve, middleware.IsValidAddress("address"))

	g.GET("/records/:name", h.GetTextRecords)
}

func (h *handler) Resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name string `param:"name" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.resolver.Resolve(ctx, p.Name)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) ReverseResolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Address domain.Address `param:"address" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.resolver.ReverseResolve(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetTextRecords(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name string `param:"name" validate:"required"`
		Keys string `query:"keys" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if len(p.Keys) == 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, xerrors.New("missing keys query param"))
	}

	res, err := h.resolver.GetTextRecords(ctx, p.Name, strings.Split(p.Keys, ","))
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, resolution.ErrUnsupportedDomainType),
		errors.Is(err, resolution.ErrOnlySupportedForENS):
		return http.StatusBadRequest
	case errors.Is(err, resolution.ErrNoResolverSet),
		errors.Is(err, resolution.ErrNoAddressSet),
		errors.Is(err, resolution.ErrNoReverseRecord),
		errors.Is(err, resolution.ErrForwardResolutionMismatch):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
