package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the storage wire format. The card record is one flat
// struct, so the serializers are written by hand against the mus-go
// primitives instead of being generated.
var (
	IDMUS   = idMUS{}
	CardMUS = cardMUS{}

	stringsMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS  = ord.NewSliceSer[float32](raw.Float32)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type cardMUS struct{}

// Field order is the wire contract; append new fields at the end only.
func (cardMUS) Marshal(c Card, bs []byte) (n int) {
	n = ord.String.Marshal(c.ID, bs)
	n += ord.String.Marshal(c.Title, bs[n:])
	n += ord.String.Marshal(c.Icon, bs[n:])
	n += varint.Int.Marshal(int(c.Category), bs[n:])
	n += ord.String.Marshal(c.Brief, bs[n:])
	n += stringsMUS.Marshal(c.Tags, bs[n:])
	n += varint.Int.Marshal(int(c.Difficulty), bs[n:])
	n += stringsMUS.Marshal(c.Steps, bs[n:])
	n += stringsMUS.Marshal(c.Warnings, bs[n:])
	n += ord.String.Marshal(c.Source, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += varint.Uint64.Marshal(c.Seq, bs[n:])
	return n
}

func (cardMUS) Unmarshal(bs []byte) (c Card, n int, err error) {
	var n1 int
	if c.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Icon, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var v int
	if v, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	c.Category = Category(v)
	if c.Brief, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Tags, n1, err = stringsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	c.Difficulty = Difficulty(v)
	if c.Steps, n1, err = stringsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Warnings, n1, err = stringsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Seq, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (cardMUS) Size(c Card) (size int) {
	size = ord.String.Size(c.ID)
	size += ord.String.Size(c.Title)
	size += ord.String.Size(c.Icon)
	size += varint.Int.Size(int(c.Category))
	size += ord.String.Size(c.Brief)
	size += stringsMUS.Size(c.Tags)
	size += varint.Int.Size(int(c.Difficulty))
	size += stringsMUS.Size(c.Steps)
	size += stringsMUS.Size(c.Warnings)
	size += ord.String.Size(c.Source)
	size += vectorMUS.Size(c.Vector)
	size += varint.Uint64.Size(c.Seq)
	return size
}

func (s cardMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
