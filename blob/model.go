// Package blob implements the container orchestrator: it walks a dex
// file's header and map list to decode every section into a Model, and
// walks a Model's recorded offsets to re-serialize it back into bytes.
package blob

import "github.com/dexcodec/dex/section"

// Model is the fully decoded contents of one dex file. Variable-width
// sections are keyed by their on-wire byte offset rather than held as flat
// slices, since that's how every cross-reference in the format addresses
// them (a ClassDefItem's ClassDataOff, a MethodIDItem's ProtoIdx, and so
// on); re-encoding places each item back at its recorded offset instead of
// recomputing a fresh layout, which is what makes byte-exact round trips
// straightforward.
type Model struct {
	Header section.Header

	StringIDs      []section.StringIDItem
	TypeIDs        []section.TypeIDItem
	ProtoIDs       []section.ProtoIDItem
	FieldIDs       []section.FieldIDItem
	MethodIDs      []section.MethodIDItem
	ClassDefs      []section.ClassDefItem
	CallSiteIDs    []section.CallSiteIDItem
	MethodHandles  []section.MethodHandleItem

	TypeLists                 map[uint32]*section.TypeList
	StringDataItems           map[uint32]*section.StringDataItem
	AnnotationSetRefLists     map[uint32]*section.AnnotationSetRefList
	AnnotationSetItems        map[uint32]*section.AnnotationSetItem
	AnnotationItems           map[uint32]*section.AnnotationItem
	AnnotationsDirectoryItems map[uint32]*section.AnnotationsDirectoryItem
	EncodedArrayItems         map[uint32]*section.EncodedArrayItem
	ClassDataItems            map[uint32]*section.ClassDataItem
	DebugInfoItems            map[uint32]*section.DebugInfoItem
	CodeItems                 map[uint32]*section.CodeItem

	HiddenapiClassDataItem *section.HiddenapiClassDataItem

	LinkData []byte
	MapList  section.MapList
}

func newModel() *Model {
	return &Model{
		TypeLists:                 make(map[uint32]*section.TypeList),
		StringDataItems:           make(map[uint32]*section.StringDataItem),
		AnnotationSetRefLists:     make(map[uint32]*section.AnnotationSetRefList),
		AnnotationSetItems:        make(map[uint32]*section.AnnotationSetItem),
		AnnotationItems:           make(map[uint32]*section.AnnotationItem),
		AnnotationsDirectoryItems: make(map[uint32]*section.AnnotationsDirectoryItem),
		EncodedArrayItems:         make(map[uint32]*section.EncodedArrayItem),
		ClassDataItems:            make(map[uint32]*section.ClassDataItem),
		DebugInfoItems:            make(map[uint32]*section.DebugInfoItem),
		CodeItems:                 make(map[uint32]*section.CodeItem),
	}
}
