// Package mcp exposes domain resolution over the Model Context Protocol
// so llm agents can resolve names through the same resolver service as
// the http api.
package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	bCtx "github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/validator"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/service/resolver"
)

type handler struct {
	resolver resolver.Resolver
}

func New(s *server.MCPServer, resolver resolver.Resolver) {
	h := &handler{
		resolver,
	}

	s.AddTool(mcp.NewTool("resolve_domain",
		mcp.WithDescription("Resolve a blockchain domain name (ENS .eth or Unstoppable Domains) to its Ethereum address"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Domain name to resolve, e.g. vitalik.eth or brad.crypto"),
		),
	), h.Resolve)

	s.AddTool(mcp.NewTool("reverse_resolve_domain",
		mcp.WithDescription("Look up the verified ENS primary name for an Ethereum address"),
		mcp.WithString("address",
			mcp.Required(),
			mcp.Description("Ethereum address, 0x-prefixed hex"),
		),
	), h.ReverseResolve)

	s.AddTool(mcp.NewTool("get_domain_text_records",
		mcp.WithDescription("Fetch ENS text records for a .eth name"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("ENS name, e.g. vitalik.eth"),
		),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description("Comma separated record keys, e.g. email,url,com.twitter"),
		),
	), h.GetTextRecords)
}

func (h *handler) Resolve(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx := toolCtx(c)

	name := getStringArg(request, "name")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	res, err := h.resolver.Resolve(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(res)
}

func (h *handler) ReverseResolve(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx := toolCtx(c)

	address := getStringArg(request, "address")
	if !validator.IsValidAddress(address) {
		return mcp.NewToolResultError("address parameter must be a valid ethereum address"), nil
	}

	res, err := h.resolver.ReverseResolve(ctx, domain.Address(address))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(res)
}

func (h *handler) GetTextRecords(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx := toolCtx(c)

	name := getStringArg(request, "name")
	keys := getStringArg(request, "keys")
	if name == "" || keys == "" {
		return mcp.NewToolResultError("name and keys parameters are required"), nil
	}

	res, err := h.resolver.GetTextRecords(ctx, name, strings.Split(keys, ","))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(res)
}

func toolCtx(c context.Context) bCtx.Ctx {
	return bCtx.WithValue(bCtx.FromStd(c), "requestID", uuid.NewString())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("error serializing result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func getStringArg(request mcp.CallToolRequest, name string) string {
	if v, ok := request.Params.Arguments[name].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
