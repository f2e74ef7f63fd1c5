package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"

	"github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/log"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/service/chain"
	"github.com/buildwithgrove/mcp-gateway/service/resolver"
	resolver_delivery "github.com/buildwithgrove/mcp-gateway/stores/resolver/delivery/mcp"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
}

func main() {
	context := ctx.Background()

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[domain.ChainId]string)
	for k := range keys {
		chainId := domain.ChainId(networks.GetInt32(fmt.Sprintf("%s.chainId", k)))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	resolverService := resolver.New(chainService)

	s := server.NewMCPServer(
		viper.GetString("app_name"),
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	resolver_delivery.New(s, resolverService)

	// mcp clients talk to us over stdin and stdout
	if err := server.ServeStdio(s); err != nil {
		log.Log().WithField("err", err).Error("mcp server stopped")
	}
}
