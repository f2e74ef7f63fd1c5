// Package abicodec hand-rolls the ABI encoding for the five contract call
// shapes name resolution needs. The call surface is fixed and small, so the
// encoders and decoders are explicit per-shape functions instead of a
// general ABI type interpreter.
//
// Decoders are total: malformed or truncated payloads decode to the empty
// value, never an error. Callers distinguish "unset" via the zero-address
// and empty-string sentinels.
package abicodec

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/buildwithgrove/mcp-gateway/domain"
)

const wordSize = 32

// 4-byte function selectors, keccak256(signature)[:4].
var (
	SelectorResolver = common.Hex2Bytes("0178b8bf") // resolver(bytes32)
	SelectorAddr     = common.Hex2Bytes("3b3b57de") // addr(bytes32)
	SelectorName     = common.Hex2Bytes("691f3431") // name(bytes32)
	SelectorText     = common.Hex2Bytes("59d1d43c") // text(bytes32,string)
	SelectorGetMany  = common.Hex2Bytes("1bd8cc1a") // getMany(string[],uint256)
)

// EncodeResolverCall builds calldata for resolver(bytes32) on the registry.
func EncodeResolverCall(node common.Hash) []byte {
	return appendWords(SelectorResolver, node[:])
}

// EncodeAddrCall builds calldata for addr(bytes32) on a resolver.
func EncodeAddrCall(node common.Hash) []byte {
	return appendWords(SelectorAddr, node[:])
}

// EncodeNameCall builds calldata for name(bytes32) on a reverse resolver.
func EncodeNameCall(node common.Hash) []byte {
	return appendWords(SelectorName, node[:])
}

// EncodeTextCall builds calldata for text(bytes32,string). The key is the
// only dynamic argument, so its head slot is the fixed offset 0x40.
func EncodeTextCall(node common.Hash, key string) []byte {
	data := appendWords(SelectorText, node[:], uintWord(2*wordSize))
	return append(data, dynString(key)...)
}

// EncodeGetManyCall builds calldata for getMany(string[],uint256). Head
// slots are the array offset (0x40, right past the head) and the tokenId;
// the tail is the array length, a pointer table of element offsets relative
// to the start of the array's data region, then each key as length plus
// zero-padded content.
func EncodeGetManyCall(keys []string, tokenId common.Hash) []byte {
	data := appendWords(SelectorGetMany, uintWord(2*wordSize), tokenId[:], uintWord(uint64(len(keys))))
	offset := uint64(wordSize * len(keys))
	for _, key := range keys {
		data = append(data, uintWord(offset)...)
		offset += uint64(wordSize + padded(len(key)))
	}
	for _, key := range keys {
		data = append(data, dynString(key)...)
	}
	return data
}

// DecodeAddress extracts an address from a bytes32-shaped return value: the
// low 20 bytes of the first word, rendered as 0x plus 40 lowercase hex
// characters. A short or empty payload decodes to the zero address.
func DecodeAddress(ret []byte) domain.Address {
	w := word(ret, 0)
	return domain.Address("0x" + hex.EncodeToString(w[wordSize-common.AddressLength:]))
}

// DecodeString decodes a single dynamic-string return value. The first word
// is the offset of the dynamic region and is skipped, the second word is the
// byte length, followed by the zero-padded content.
func DecodeString(ret []byte) string {
	return stringAt(ret, wordSize)
}

// DecodeFirstString decodes a string[] return value and yields its first
// element, or "" when the array is empty. Only the first element is ever
// needed: getMany is always issued with a single key.
func DecodeFirstString(ret []byte) string {
	arrOffset := wordUint(ret, 0)
	if arrOffset > uint64(len(ret)) {
		return ""
	}
	length := wordUint(ret, arrOffset)
	if length == 0 {
		return ""
	}
	// element offsets are relative to the start of the array's data
	// region, which begins right after the length word
	dataStart := arrOffset + wordSize
	elemOffset := wordUint(ret, dataStart)
	if elemOffset > uint64(len(ret)) {
		return ""
	}
	return stringAt(ret, dataStart+elemOffset)
}

// stringAt reads a length word at offset and the UTF-8 content after it.
// Out-of-range lengths are clamped to the payload.
func stringAt(ret []byte, offset uint64) string {
	length := wordUint(ret, offset)
	start := offset + wordSize
	if length == 0 || start >= uint64(len(ret)) {
		return ""
	}
	if length > uint64(len(ret))-start {
		length = uint64(len(ret)) - start
	}
	return string(ret[start : start+length])
}

// word returns the 32-byte word at the given byte offset, zero-padded when
// the payload is short.
func word(ret []byte, offset uint64) []byte {
	w := make([]byte, wordSize)
	if offset < uint64(len(ret)) {
		copy(w, ret[offset:])
	}
	return w
}

// wordUint reads a word as a uint64. Values beyond uint64 range are garbage
// offsets or lengths; they saturate so bounds checks reject them.
func wordUint(ret []byte, offset uint64) uint64 {
	w := word(ret, offset)
	for _, b := range w[:wordSize-8] {
		if b != 0 {
			return math.MaxUint64
		}
	}
	return binary.BigEndian.Uint64(w[wordSize-8:])
}

func appendWords(selector []byte, words ...[]byte) []byte {
	data := make([]byte, 0, len(selector)+wordSize*len(words))
	data = append(data, selector...)
	for _, w := range words {
		data = append(data, w...)
	}
	return data
}

func uintWord(v uint64) []byte {
	w := make([]byte, wordSize)
	binary.BigEndian.PutUint64(w[wordSize-8:], v)
	return w
}

// dynString encodes a length word followed by the UTF-8 bytes right-padded
// with zeros to the next word boundary.
func dynString(s string) []byte {
	out := uintWord(uint64(len(s)))
	content := make([]byte, padded(len(s)))
	copy(content, s)
	return append(out, content...)
}

func padded(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}
