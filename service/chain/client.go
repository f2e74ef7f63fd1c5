package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/log"
	"github.com/buildwithgrove/mcp-gateway/base/metrics"
	"github.com/buildwithgrove/mcp-gateway/domain"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

type ClientCfg struct {
	RpcUrls map[domain.ChainId]string
}

// Client performs read-only eth_call requests against latest state. It owns
// cancellation and transport errors; callers own interpretation of the
// returned bytes.
type Client interface {
	Call(ctx bCtx.Ctx, chainId domain.ChainId, contract common.Address, callData []byte) ([]byte, error)
}

type clientImpl struct {
	clients map[domain.ChainId]*ethclient.Client
	met     metrics.Service
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	clients := make(map[domain.ChainId]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	return &clientImpl{
		clients: clients,
		met:     metrics.New("chain"),
	}, anyerr
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, contract common.Address, callData []byte) ([]byte, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	defer c.met.BumpTime("eth_call.latency", "chainId", fmt.Sprint(chainId)).End()

	msg := ethereum.CallMsg{
		To:   &contract,
		Data: callData,
	}
	res, err := client.CallContract(ctx, msg, nil) // nil means latest block
	if err != nil {
		c.met.BumpSum("eth_call.err", 1, "chainId", fmt.Sprint(chainId))
		ctx.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract.Hex(),
		}).Error("client.CallContract failed")
		return nil, err
	}
	return res, nil
}
