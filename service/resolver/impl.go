package resolver

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/viney-shih/goroutines"

	"github.com/buildwithgrove/mcp-gateway/base/abicodec"
	bCtx "github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/ethereum"
	"github.com/buildwithgrove/mcp-gateway/base/log"
	"github.com/buildwithgrove/mcp-gateway/base/ptr"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/domain/resolution"
	"github.com/buildwithgrove/mcp-gateway/service/chain"
)

const (
	ensSuffix = ".eth"

	// the only record key ever requested from the UD proxy reader
	udEthAddressKey = "crypto.ETH.address"

	maxTextRecordWorkers = 8
)

// unstoppableTlds are the suffixes routed to the Unstoppable Domains proxy
// reader on Polygon.
var unstoppableTlds = map[string]bool{
	"crypto":     true,
	"nft":        true,
	"blockchain": true,
	"bitcoin":    true,
	"coin":       true,
	"wallet":     true,
	"888":        true,
	"dao":        true,
	"x":          true,
	"zil":        true,
}

type impl struct {
	chain chain.Client
}

func New(chainClient chain.Client) Resolver {
	return &impl{
		chain: chainClient,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func tld(name string) string {
	parts := strings.Split(name, ".")
	return parts[len(parts)-1]
}

func (im *impl) Resolve(ctx bCtx.Ctx, name string) (*resolution.Result, error) {
	name = normalize(name)
	if !strings.Contains(name, ".") {
		return nil, resolution.ErrUnsupportedDomainType
	}
	switch {
	case strings.HasSuffix(name, ensSuffix):
		return im.resolveEns(ctx, name)
	case unstoppableTlds[tld(name)]:
		return im.resolveUnstoppable(ctx, name)
	default:
		return nil, resolution.ErrUnsupportedDomainType
	}
}

func (im *impl) resolveEns(ctx bCtx.Ctx, name string) (*resolution.Result, error) {
	node := ethereum.NameHash(name)

	resolverAddr, err := im.lookupResolver(ctx, name, node)
	if err != nil {
		return nil, err
	}

	ret, err := im.chain.Call(ctx, domain.ChainIdEthereum, resolverAddr, abicodec.EncodeAddrCall(node))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("addr call failed")
		return nil, fmt.Errorf("%w: %v", resolution.ErrFailedToResolveAddress, err)
	}

	addr := abicodec.DecodeAddress(ret)
	if addr.IsEmpty() {
		return nil, resolution.ErrNoAddressSet
	}

	return &resolution.Result{
		Domain:  name,
		Address: addr,
		Kind:    resolution.KindENS,
	}, nil
}

// lookupResolver asks the ENS registry which resolver contract is
// registered for node.
func (im *impl) lookupResolver(ctx bCtx.Ctx, name string, node common.Hash) (common.Address, error) {
	ret, err := im.chain.Call(ctx, domain.ChainIdEthereum, resolution.ENSRegistryAddress, abicodec.EncodeResolverCall(node))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("resolver call failed")
		return common.Address{}, fmt.Errorf("%w: %v", resolution.ErrFailedToGetResolver, err)
	}

	addr := abicodec.DecodeAddress(ret)
	if addr.IsEmpty() {
		return common.Address{}, resolution.ErrNoResolverSet
	}
	return common.HexToAddress(string(addr)), nil
}

func (im *impl) resolveUnstoppable(ctx bCtx.Ctx, name string) (*resolution.Result, error) {
	// the UD token id is the namehash of the domain
	tokenId := ethereum.NameHash(name)

	ret, err := im.chain.Call(ctx, domain.ChainIdPolygon, resolution.UDProxyReaderAddress,
		abicodec.EncodeGetManyCall([]string{udEthAddressKey}, tokenId))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("getMany call failed")
		return nil, fmt.Errorf("%w: %v", resolution.ErrFailedToResolveAddress, err)
	}

	value := abicodec.DecodeFirstString(ret)
	if value == "" || domain.Address(value).IsEmpty() {
		return nil, resolution.ErrNoAddressSet
	}

	return &resolution.Result{
		Domain:  name,
		Address: domain.Address(value).ToLower(),
		Kind:    resolution.KindUnstoppableDomains,
	}, nil
}

func (im *impl) ReverseResolve(ctx bCtx.Ctx, address domain.Address) (*resolution.ReverseResult, error) {
	node := ethereum.ReverseNode(string(address))

	ret, err := im.chain.Call(ctx, domain.ChainIdEthereum, resolution.ENSPublicResolverAddress, abicodec.EncodeNameCall(node))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("name call failed")
		return nil, fmt.Errorf("%w: %v", resolution.ErrNoReverseRecord, err)
	}

	name := abicodec.DecodeString(ret)
	if name == "" {
		return nil, resolution.ErrNoReverseRecord
	}

	// reverse records are self-asserted; forward-resolve the claimed name
	// and require it to reproduce the queried address
	forward, err := im.Resolve(ctx, name)
	if err != nil || !forward.Address.Equals(address) {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
			"name":    name,
		}).Warn("reverse record failed forward verification")
		return nil, resolution.ErrForwardResolutionMismatch
	}

	return &resolution.ReverseResult{
		Address:  address.ToLower(),
		Domain:   name,
		Kind:     resolution.KindENS,
		Verified: true,
	}, nil
}

func (im *impl) GetTextRecords(ctx bCtx.Ctx, name string, keys []string) (*resolution.TextRecordsResult, error) {
	name = normalize(name)
	if !strings.HasSuffix(name, ensSuffix) {
		return nil, resolution.ErrOnlySupportedForENS
	}

	node := ethereum.NameHash(name)
	resolverAddr, err := im.lookupResolver(ctx, name, node)
	if err != nil {
		return nil, err
	}

	records := make([]resolution.TextRecord, len(keys))
	if len(keys) == 0 {
		return &resolution.TextRecordsResult{Domain: name, Records: records}, nil
	}

	type indexedRecord struct {
		idx int
		rec resolution.TextRecord
	}

	// the per-key text() reads are independent, fan them out
	b := goroutines.NewBatch(maxTextRecordWorkers, goroutines.WithBatchSize(len(keys)))
	defer b.Close()
	for i := range keys {
		idx := i
		b.Queue(func() (interface{}, error) {
			rec := resolution.TextRecord{Key: keys[idx]}
			ret, err := im.chain.Call(ctx, domain.ChainIdEthereum, resolverAddr, abicodec.EncodeTextCall(node, keys[idx]))
			if err != nil {
				// a single missing record is not a batch failure
				ctx.WithFields(log.Fields{
					"err":  err,
					"name": name,
					"key":  keys[idx],
				}).Warn("text call failed")
				return indexedRecord{idx, rec}, nil
			}
			if value := abicodec.DecodeString(ret); value != "" {
				rec.Value = ptr.String(value)
			}
			return indexedRecord{idx, rec}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		ir := ret.Value().(indexedRecord)
		records[ir.idx] = ir.rec
	}

	return &resolution.TextRecordsResult{
		Domain:  name,
		Records: records,
	}, nil
}
