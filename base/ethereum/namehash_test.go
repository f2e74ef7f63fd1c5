package ethereum

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNameHash(t *testing.T) {
	req := require.New(t)

	// published EIP-137 test vectors
	tests := []struct {
		name string
		want string
	}{
		{
			name: "",
			want: "0x0000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name: "eth",
			want: "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae",
		},
		{
			name: "foo.eth",
			want: "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f",
		},
		{
			name: "vitalik.eth",
			want: "0xee6c4522aab0003e8d14cd40a6af439055fd2577951148c14b6cea9a53475835",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameHash(tt.name)
			require.Equal(t, common.HexToHash(tt.want), got)
		})
	}

	// purely label-sequence dependent
	req.Equal(NameHash("foo.eth"), NameHash("foo.eth"))
	req.NotEqual(NameHash("foo.eth"), NameHash("eth.foo"))
}

func TestReverseNode(t *testing.T) {
	req := require.New(t)

	addr := "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

	// equals the namehash of the lowercase hex label under addr.reverse
	want := NameHash("d8da6bf26964af9d7eed9e03e53415d37aa96045.addr.reverse")
	req.Equal(want, ReverseNode(addr))

	// case-insensitive in the input address
	req.Equal(ReverseNode(addr), ReverseNode("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"))
}
