package kvstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/BeanstalkNetwork/merkle-notes/merkle"
)

// Leaf records: { parent: u32 LE, hash: H-bytes }.
func encodeLeafMeta[Hash any, Element any](h merkle.Hasher[Hash, Element], parent merkle.NodeIndex, hash Hash) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(parent)); err != nil {
		return nil, err
	}
	if err := h.WriteHash(&buf, hash); err != nil {
		return nil, fmt.Errorf("kvstore: encode leaf hash: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeLeafMeta[Hash any, Element any](h merkle.Hasher[Hash, Element], data []byte) (merkle.NodeIndex, Hash, error) {
	var zero Hash
	r := bytes.NewReader(data)
	var parent uint32
	if err := binary.Read(r, binary.LittleEndian, &parent); err != nil {
		return 0, zero, err
	}
	hash, err := h.ReadHash(r)
	if err != nil {
		return 0, zero, fmt.Errorf("kvstore: decode leaf hash: %w", err)
	}
	return merkle.NodeIndex(parent), hash, nil
}

// Node records: { variant_tag: u8, index: u32 LE, hash: H-bytes }.
// index holds Parent for a Left node, Left for a Right node, and is
// unused (zero) for Empty.
const (
	tagEmpty byte = 0
	tagLeft  byte = 1
	tagRight byte = 2
)

func encodeNode[Hash any, Element any](h merkle.Hasher[Hash, Element], n merkle.Node[Hash]) ([]byte, error) {
	var buf bytes.Buffer
	switch v := n.(type) {
	case merkle.EmptyNode:
		buf.WriteByte(tagEmpty)
		binary.Write(&buf, binary.LittleEndian, uint32(0))
		var zero Hash
		if err := h.WriteHash(&buf, zero); err != nil {
			return nil, fmt.Errorf("kvstore: encode empty node hash: %w", err)
		}
	case merkle.LeftNode[Hash]:
		buf.WriteByte(tagLeft)
		binary.Write(&buf, binary.LittleEndian, uint32(v.Parent))
		if err := h.WriteHash(&buf, v.HashOfSibling); err != nil {
			return nil, fmt.Errorf("kvstore: encode left node hash: %w", err)
		}
	case merkle.RightNode[Hash]:
		buf.WriteByte(tagRight)
		binary.Write(&buf, binary.LittleEndian, uint32(v.Left))
		if err := h.WriteHash(&buf, v.HashOfSibling); err != nil {
			return nil, fmt.Errorf("kvstore: encode right node hash: %w", err)
		}
	default:
		return nil, fmt.Errorf("kvstore: unknown node variant %T", n)
	}
	return buf.Bytes(), nil
}

func decodeNode[Hash any, Element any](h merkle.Hasher[Hash, Element], data []byte) (merkle.Node[Hash], error) {
	r := bytes.NewReader(data)
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var index uint32
	if err := binary.Read(r, binary.LittleEndian, &index); err != nil {
		return nil, err
	}
	hash, err := h.ReadHash(r)
	if err != nil {
		return nil, fmt.Errorf("kvstore: decode node hash: %w", err)
	}
	switch tag {
	case tagEmpty:
		return merkle.EmptyNode{}, nil
	case tagLeft:
		return merkle.LeftNode[Hash]{Parent: merkle.NodeIndex(index), HashOfSibling: hash}, nil
	case tagRight:
		return merkle.RightNode[Hash]{Left: merkle.NodeIndex(index), HashOfSibling: hash}, nil
	default:
		return nil, fmt.Errorf("kvstore: unknown node tag %d", tag)
	}
}
