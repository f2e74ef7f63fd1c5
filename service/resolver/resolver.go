package resolver

import (
	bCtx "github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/domain/resolution"
)

// Resolver resolves human-readable blockchain domain names on chain. Every
// call re-resolves from scratch; nothing is cached between calls.
type Resolver interface {
	// Resolve forward-resolves an ENS or Unstoppable Domains name to its
	// address.
	Resolve(ctx bCtx.Ctx, name string) (*resolution.Result, error)
	// ReverseResolve looks up the ENS name claimed by an address and
	// forward-verifies the claim.
	ReverseResolve(ctx bCtx.Ctx, address domain.Address) (*resolution.ReverseResult, error)
	// GetTextRecords fetches ENS text records for the given keys. Missing
	// records yield nil values without failing the batch.
	GetTextRecords(ctx bCtx.Ctx, name string, keys []string) (*resolution.TextRecordsResult, error)
}
