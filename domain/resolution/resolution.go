package resolution

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/buildwithgrove/mcp-gateway/domain"
)

// Kind tags which name system produced a result.
type Kind string

const (
	KindENS                Kind = "ENS"
	KindUnstoppableDomains Kind = "UnstoppableDomains"
)

// Well-known contracts the resolution flows are pinned to. ENS lives on
// Ethereum mainnet, the Unstoppable Domains proxy reader on Polygon mainnet.
var (
	ENSRegistryAddress       = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
	ENSPublicResolverAddress = common.HexToAddress("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63")
	UDProxyReaderAddress     = common.HexToAddress("0xA3f32c8cd786dc089Bd1fC175F2707223aeE5d00")
)

// Result is a successful forward resolution.
type Result struct {
	Domain  string         `json:"domain"`
	Address domain.Address `json:"address"`
	Kind    Kind           `json:"kind"`
}

// ReverseResult is a successful reverse resolution. Verified is only true
// when forward-resolving Domain reproduced Address; reverse records are
// self-asserted by the name owner, so an unverified answer is worthless.
type ReverseResult struct {
	Address  domain.Address `json:"address"`
	Domain   string         `json:"domain"`
	Kind     Kind           `json:"kind"`
	Verified bool           `json:"verified"`
}

// TextRecord is one key of a text-record batch. Value is nil when the
// record is absent, which is distinct from an empty string.
type TextRecord struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// TextRecordsResult is the outcome of a text-record batch fetch. A missing
// record keeps its slot with a nil Value; it does not fail the batch.
type TextRecordsResult struct {
	Domain  string       `json:"domain"`
	Records []TextRecord `json:"records"`
}

var (
	// ErrUnsupportedDomainType means the suffix routes to neither ENS nor
	// Unstoppable Domains.
	ErrUnsupportedDomainType = errors.New("unsupported domain type")
	// ErrFailedToGetResolver means the registry lookup itself failed at the
	// transport level.
	ErrFailedToGetResolver = errors.New("failed to get resolver")
	// ErrNoResolverSet means the registry answered with the zero address.
	ErrNoResolverSet = errors.New("no resolver set for domain")
	// ErrFailedToResolveAddress means the resolver call failed at the
	// transport level.
	ErrFailedToResolveAddress = errors.New("failed to resolve address")
	// ErrNoAddressSet means the resolver answered but the record is unset.
	ErrNoAddressSet = errors.New("no address set for domain")
	// ErrNoReverseRecord means the reverse name() lookup failed or the
	// record is empty.
	ErrNoReverseRecord = errors.New("no reverse record set for address")
	// ErrForwardResolutionMismatch means the reverse record named a domain
	// that does not resolve back to the queried address.
	ErrForwardResolutionMismatch = errors.New("reverse record does not match forward resolution")
	// ErrOnlySupportedForENS means text records were requested for a
	// non-ENS domain.
	ErrOnlySupportedForENS = errors.New("text records are only supported for ens domains")
)
