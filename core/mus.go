// Copyright 2025 GyanFactory
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted record types. Timestamps are encoded as
// Unix microseconds; vectors as a varint length followed by raw float32
// elements. Field order is part of the storage format and must not change.
var (
	IDMUS       = idMUS{}
	DocumentMUS = documentMUS{}
	QAItemMUS   = qaItemMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalVector(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalVector(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var n1 int
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func sizeVector(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

type documentMUS struct{}

func (documentMUS) Marshal(doc Document, bs []byte) (n int) {
	n = IDMUS.Marshal(doc.Id, bs)
	n += IDMUS.Marshal(doc.ProjectId, bs[n:])
	n += ord.String.Marshal(doc.Filename, bs[n:])
	n += ord.String.Marshal(doc.Contents, bs[n:])
	n += marshalVector(doc.Vector, bs[n:])
	n += varint.Int.Marshal(int(doc.Status), bs[n:])
	n += marshalTime(doc.InsertedAt, bs[n:])
	n += marshalTime(doc.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (doc Document, n int, err error) {
	var n1 int
	doc.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	doc.ProjectId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Contents, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Vector, n1, err = unmarshalVector(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Status = ProcessingStatus(status)
	doc.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(doc Document) (size int) {
	size = IDMUS.Size(doc.Id)
	size += IDMUS.Size(doc.ProjectId)
	size += ord.String.Size(doc.Filename)
	size += ord.String.Size(doc.Contents)
	size += sizeVector(doc.Vector)
	size += varint.Int.Size(int(doc.Status))
	size += sizeTime(doc.InsertedAt)
	size += sizeTime(doc.UpdatedAt)
	return size
}

type qaItemMUS struct{}

func (qaItemMUS) Marshal(item QAItem, bs []byte) (n int) {
	n = IDMUS.Marshal(item.Id, bs)
	n += IDMUS.Marshal(item.ProjectId, bs[n:])
	n += IDMUS.Marshal(item.DocumentId, bs[n:])
	n += ord.String.Marshal(item.Question, bs[n:])
	n += ord.String.Marshal(item.Answer, bs[n:])
	n += marshalVector(item.Vector, bs[n:])
	n += ord.Bool.Marshal(item.IsGenerated, bs[n:])
	n += marshalTime(item.InsertedAt, bs[n:])
	n += marshalTime(item.UpdatedAt, bs[n:])
	return n
}

func (qaItemMUS) Unmarshal(bs []byte) (item QAItem, n int, err error) {
	var n1 int
	item.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	item.ProjectId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.Vector, n1, err = unmarshalVector(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.IsGenerated, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return
	}
	item.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return
}

func (qaItemMUS) Size(item QAItem) (size int) {
	size = IDMUS.Size(item.Id)
	size += IDMUS.Size(item.ProjectId)
	size += IDMUS.Size(item.DocumentId)
	size += ord.String.Size(item.Question)
	size += ord.String.Size(item.Answer)
	size += sizeVector(item.Vector)
	size += ord.Bool.Size(item.IsGenerated)
	size += sizeTime(item.InsertedAt)
	size += sizeTime(item.UpdatedAt)
	return size
}
