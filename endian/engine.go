// Package endian provides byte order utilities for the container codec.
//
// DEX files declare their byte order in header.EndianTag: the canonical
// ENDIAN_CONSTANT (little-endian, the overwhelming majority of real files)
// or REVERSE_ENDIAN_CONSTANT for byte-swapped images produced by some
// cross-compilation toolchains for the historic Dalvik VM. EndianEngine
// lets the rest of the codec stay agnostic of which one it's reading.
//
// This extends Go's standard encoding/binary package by combining the
// ByteOrder and AppendByteOrder interfaces into a single interface,
// allowing binary.LittleEndian and binary.BigEndian to be used
// interchangeably wherever an EndianEngine is expected.
package endian

import (
	"encoding/binary"
	"errors"
	"unsafe"
)

// ErrUnknownEndianTag is returned by ForTag when the raw endian_tag value
// is neither ENDIAN_CONSTANT nor REVERSE_ENDIAN_CONSTANT.
var ErrUnknownEndianTag = errors.New("dex: unknown endian_tag value")

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. Satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	if IsNativeLittleEndian() {
		return engine == binary.LittleEndian
	}
	return engine == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine, used for the
// ENDIAN_CONSTANT case that covers essentially all real DEX files.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used when
// header.EndianTag reads REVERSE_ENDIAN_CONSTANT.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForTag resolves the engine matching a raw header endian_tag value.
func ForTag(tag uint32) (EndianEngine, error) {
	switch tag {
	case EndianConstant:
		return GetLittleEndianEngine(), nil
	case ReverseEndianConstant:
		return GetBigEndianEngine(), nil
	default:
		return nil, ErrUnknownEndianTag
	}
}

// TagFor returns the raw header endian_tag value for an engine.
func TagFor(e EndianEngine) uint32 {
	if e == binary.BigEndian {
		return ReverseEndianConstant
	}

	return EndianConstant
}

// Known DEX endian_tag values.
const (
	EndianConstant        uint32 = 0x12345678
	ReverseEndianConstant uint32 = 0x78563412
)
