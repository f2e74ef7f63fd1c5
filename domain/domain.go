package domain

import (
	"strings"
)

type ChainId int32

const (
	ChainIdEthereum ChainId = 1
	ChainIdPolygon  ChainId = 137
)

type Address string

// EmptyAddress is the zero-address sentinel contracts return for unset
// address-shaped records.
const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return string(a.ToLower())
}

func (a Address) Equals(b Address) bool {
	return strings.EqualFold(string(a), string(b))
}

func (a Address) IsEmpty() bool {
	return a.ToLower() == EmptyAddress
}
