package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// reverseSuffix is the ENS namespace for reverse (address -> name) records.
const reverseSuffix = ".addr.reverse"

// NameHash implements the EIP-137 namehash algorithm: the labels of the
// dotted name are folded right to left over keccak256, starting from the
// zero node. The empty name is the zero node itself.
//
// Callers are expected to pass lowercased names; no UTS-46 normalization
// is applied here.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256Hash([]byte(labels[i]))
		node = crypto.Keccak256Hash(node[:], labelHash[:])
	}
	return node
}

// ReverseNode returns the node for an address's ENS reverse record,
// namehash of "<hex-address-without-0x>.addr.reverse".
func ReverseNode(address string) common.Hash {
	addr := strings.TrimPrefix(strings.ToLower(address), "0x")
	return NameHash(addr + reverseSuffix)
}
