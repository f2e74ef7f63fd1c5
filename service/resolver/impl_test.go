package resolver

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildwithgrove/mcp-gateway/base/abicodec"
	bCtx "github.com/buildwithgrove/mcp-gateway/base/ctx"
	"github.com/buildwithgrove/mcp-gateway/base/ethereum"
	"github.com/buildwithgrove/mcp-gateway/domain"
	"github.com/buildwithgrove/mcp-gateway/domain/resolution"
	"github.com/buildwithgrove/mcp-gateway/service/chain/mocks"
)

const (
	publicResolverHex = "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63"
	vitalikHex        = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
)

type resolverSuite struct {
	suite.Suite

	chain *mocks.Client
	im    *impl
}

func (s *resolverSuite) SetupTest() {
	s.chain = &mocks.Client{}
	s.im = New(s.chain).(*impl)
}

func (s *resolverSuite) TearDownTest() {
	s.chain.AssertExpectations(s.T())
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(resolverSuite))
}

// addressReturn pads an address to a bytes32-shaped return value
func addressReturn(hexAddr string) []byte {
	return common.LeftPadBytes(common.HexToAddress(hexAddr).Bytes(), 32)
}

// stringReturn builds a single-string return payload
func stringReturn(v string) []byte {
	out := word(0x20)
	out = append(out, word(uint64(len(v)))...)
	content := make([]byte, (len(v)+31)/32*32)
	copy(content, v)
	return append(out, content...)
}

// stringArrayReturn builds a string[] return payload
func stringArrayReturn(values ...string) []byte {
	out := word(0x20)
	out = append(out, word(uint64(len(values)))...)
	offset := uint64(32 * len(values))
	for _, v := range values {
		out = append(out, word(offset)...)
		offset += uint64(32 + (len(v)+31)/32*32)
	}
	for _, v := range values {
		out = append(out, word(uint64(len(v)))...)
		content := make([]byte, (len(v)+31)/32*32)
		copy(content, v)
		out = append(out, content...)
	}
	return out
}

func word(v uint64) []byte {
	w := make([]byte, 32)
	for i := 0; i < 8; i++ {
		w[31-i] = byte(v >> (8 * i))
	}
	return w
}

func (s *resolverSuite) expectResolverLookup(name string, resolverHex string) {
	node := ethereum.NameHash(name)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSRegistryAddress,
		abicodec.EncodeResolverCall(node)).Return(addressReturn(resolverHex), nil).Once()
}

func (s *resolverSuite) TestResolveEns() {
	node := ethereum.NameHash("vitalik.eth")
	s.expectResolverLookup("vitalik.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeAddrCall(node)).Return(addressReturn(vitalikHex), nil).Once()

	res, err := s.im.Resolve(bCtx.Background(), "Vitalik.ETH ")
	if s.NoError(err) {
		s.Equal("vitalik.eth", res.Domain)
		s.Equal(domain.Address(vitalikHex), res.Address)
		s.Equal(resolution.KindENS, res.Kind)
	}
}

func (s *resolverSuite) TestResolveUnsupportedTld() {
	res, err := s.im.Resolve(bCtx.Background(), "example.com")
	s.Nil(res)
	s.ErrorIs(err, resolution.ErrUnsupportedDomainType)
	s.chain.AssertNotCalled(s.T(), "Call", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *resolverSuite) TestResolveBareLabel() {
	_, err := s.im.Resolve(bCtx.Background(), "crypto")
	s.ErrorIs(err, resolution.ErrUnsupportedDomainType)
}

func (s *resolverSuite) TestResolveNoResolverSet() {
	node := ethereum.NameHash("ghost.eth")
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSRegistryAddress,
		abicodec.EncodeResolverCall(node)).Return(make([]byte, 32), nil).Once()

	_, err := s.im.Resolve(bCtx.Background(), "ghost.eth")
	s.ErrorIs(err, resolution.ErrNoResolverSet)
}

func (s *resolverSuite) TestResolveNoAddressSet() {
	node := ethereum.NameHash("empty.eth")
	s.expectResolverLookup("empty.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeAddrCall(node)).Return(make([]byte, 32), nil).Once()

	_, err := s.im.Resolve(bCtx.Background(), "empty.eth")
	s.ErrorIs(err, resolution.ErrNoAddressSet)
}

func (s *resolverSuite) TestResolveRegistryTransportError() {
	node := ethereum.NameHash("down.eth")
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSRegistryAddress,
		abicodec.EncodeResolverCall(node)).Return(nil, errors.New("rpc timeout")).Once()

	_, err := s.im.Resolve(bCtx.Background(), "down.eth")
	s.ErrorIs(err, resolution.ErrFailedToGetResolver)
	s.Contains(err.Error(), "rpc timeout")
}

func (s *resolverSuite) TestResolveResolverTransportError() {
	node := ethereum.NameHash("flaky.eth")
	s.expectResolverLookup("flaky.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeAddrCall(node)).Return(nil, errors.New("rpc timeout")).Once()

	_, err := s.im.Resolve(bCtx.Background(), "flaky.eth")
	s.ErrorIs(err, resolution.ErrFailedToResolveAddress)
}

func (s *resolverSuite) TestResolveUnstoppable() {
	tokenId := ethereum.NameHash("brad.crypto")
	s.chain.On("Call", mock.Anything, domain.ChainIdPolygon, resolution.UDProxyReaderAddress,
		abicodec.EncodeGetManyCall([]string{"crypto.ETH.address"}, tokenId)).
		Return(stringArrayReturn("0x8aaD44321A86b170879d7A244c1e8d360c99DdA8"), nil).Once()

	res, err := s.im.Resolve(bCtx.Background(), "brad.crypto")
	if s.NoError(err) {
		s.Equal("brad.crypto", res.Domain)
		s.Equal(domain.Address("0x8aad44321a86b170879d7a244c1e8d360c99dda8"), res.Address)
		s.Equal(resolution.KindUnstoppableDomains, res.Kind)
	}
}

func (s *resolverSuite) TestResolveUnstoppableNoRecord() {
	tokenId := ethereum.NameHash("nobody.nft")
	s.chain.On("Call", mock.Anything, domain.ChainIdPolygon, resolution.UDProxyReaderAddress,
		abicodec.EncodeGetManyCall([]string{"crypto.ETH.address"}, tokenId)).
		Return(stringArrayReturn(), nil).Once()

	_, err := s.im.Resolve(bCtx.Background(), "nobody.nft")
	s.ErrorIs(err, resolution.ErrNoAddressSet)
}

func (s *resolverSuite) TestResolveUnstoppableZeroAddressRecord() {
	tokenId := ethereum.NameHash("zeroed.wallet")
	s.chain.On("Call", mock.Anything, domain.ChainIdPolygon, resolution.UDProxyReaderAddress,
		abicodec.EncodeGetManyCall([]string{"crypto.ETH.address"}, tokenId)).
		Return(stringArrayReturn("0x0000000000000000000000000000000000000000"), nil).Once()

	_, err := s.im.Resolve(bCtx.Background(), "zeroed.wallet")
	s.ErrorIs(err, resolution.ErrNoAddressSet)
}

func (s *resolverSuite) expectReverseName(addr string, name string) {
	node := ethereum.ReverseNode(addr)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSPublicResolverAddress,
		abicodec.EncodeNameCall(node)).Return(stringReturn(name), nil).Once()
}

func (s *resolverSuite) TestReverseResolve() {
	s.expectReverseName(vitalikHex, "vitalik.eth")
	node := ethereum.NameHash("vitalik.eth")
	s.expectResolverLookup("vitalik.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeAddrCall(node)).Return(addressReturn(vitalikHex), nil).Once()

	res, err := s.im.ReverseResolve(bCtx.Background(), domain.Address(vitalikHex))
	if s.NoError(err) {
		s.Equal("vitalik.eth", res.Domain)
		s.Equal(domain.Address(vitalikHex), res.Address)
		s.Equal(resolution.KindENS, res.Kind)
		s.True(res.Verified)
	}
}

func (s *resolverSuite) TestReverseResolveNoRecord() {
	s.expectReverseName(vitalikHex, "")

	res, err := s.im.ReverseResolve(bCtx.Background(), domain.Address(vitalikHex))
	s.Nil(res)
	s.ErrorIs(err, resolution.ErrNoReverseRecord)
}

func (s *resolverSuite) TestReverseResolveMismatch() {
	// the reverse record claims test.eth, but test.eth forward-resolves to
	// someone else
	other := "0x00000000000000000000000000000000deadbeef"
	s.expectReverseName(vitalikHex, "test.eth")
	node := ethereum.NameHash("test.eth")
	s.expectResolverLookup("test.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeAddrCall(node)).Return(addressReturn(other), nil).Once()

	res, err := s.im.ReverseResolve(bCtx.Background(), domain.Address(vitalikHex))
	s.Nil(res)
	s.ErrorIs(err, resolution.ErrForwardResolutionMismatch)
}

func (s *resolverSuite) TestReverseResolveForwardFailure() {
	// forward resolution failing entirely is also a mismatch
	s.expectReverseName(vitalikHex, "test.eth")
	node := ethereum.NameHash("test.eth")
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSRegistryAddress,
		abicodec.EncodeResolverCall(node)).Return(make([]byte, 32), nil).Once()

	_, err := s.im.ReverseResolve(bCtx.Background(), domain.Address(vitalikHex))
	s.ErrorIs(err, resolution.ErrForwardResolutionMismatch)
}

func (s *resolverSuite) TestGetTextRecords() {
	node := ethereum.NameHash("test.eth")
	s.expectResolverLookup("test.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeTextCall(node, "email")).Return(stringReturn("hello@test.eth"), nil).Once()
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeTextCall(node, "com.twitter")).Return(stringReturn(""), nil).Once()

	res, err := s.im.GetTextRecords(bCtx.Background(), "test.eth", []string{"email", "com.twitter"})
	if s.NoError(err) {
		s.Equal("test.eth", res.Domain)
		s.Require().Len(res.Records, 2)
		s.Equal("email", res.Records[0].Key)
		if s.NotNil(res.Records[0].Value) {
			s.Equal("hello@test.eth", *res.Records[0].Value)
		}
		s.Equal("com.twitter", res.Records[1].Key)
		s.Nil(res.Records[1].Value)
	}
}

func (s *resolverSuite) TestGetTextRecordsSingleFailureIsNotFatal() {
	node := ethereum.NameHash("test.eth")
	s.expectResolverLookup("test.eth", publicResolverHex)
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, common.HexToAddress(publicResolverHex),
		abicodec.EncodeTextCall(node, "email")).Return(nil, errors.New("rpc timeout")).Once()

	res, err := s.im.GetTextRecords(bCtx.Background(), "test.eth", []string{"email"})
	if s.NoError(err) {
		s.Require().Len(res.Records, 1)
		s.Nil(res.Records[0].Value)
	}
}

func (s *resolverSuite) TestGetTextRecordsNonEns() {
	_, err := s.im.GetTextRecords(bCtx.Background(), "brad.crypto", []string{"email"})
	s.ErrorIs(err, resolution.ErrOnlySupportedForENS)
	s.chain.AssertNotCalled(s.T(), "Call", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *resolverSuite) TestGetTextRecordsNoResolver() {
	node := ethereum.NameHash("ghost.eth")
	s.chain.On("Call", mock.Anything, domain.ChainIdEthereum, resolution.ENSRegistryAddress,
		abicodec.EncodeResolverCall(node)).Return(make([]byte, 32), nil).Once()

	_, err := s.im.GetTextRecords(bCtx.Background(), "ghost.eth", []string{"email"})
	s.ErrorIs(err, resolution.ErrNoResolverSet)
}
