// Copyright 2024 the doris-go authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package vec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dchest/siphash"
	"github.com/klauspost/compress/zstd"
)

// Block frames are zstd-compressed and carry a siphash of the
// uncompressed body so that a corrupted frame is rejected before
// its contents reach an operator.

const frameMagic = 0x6b6c6276 // "vblk"

// fixed siphash key; the checksum guards against corruption,
// not adversaries
const (
	sipK0 = 0x7061727469616c73
	sipK1 = 0x6f7274656472756e
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(err)
	}
	zstdEncoder = enc
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	zstdDecoder = dec
}

// EncodeBlock serializes b into a self-describing compressed frame.
func EncodeBlock(b *Block) []byte {
	body := appendBody(nil, b)

	frame := make([]byte, 16, 16+len(body)/2)
	binary.LittleEndian.PutUint32(frame[0:], frameMagic)
	binary.LittleEndian.PutUint32(frame[4:], uint32(len(body)))
	binary.LittleEndian.PutUint64(frame[8:], siphash.Hash(sipK0, sipK1, body))
	return zstdEncoder.EncodeAll(body, frame)
}

// DecodeBlock parses a frame produced by EncodeBlock.
func DecodeBlock(frame []byte) (*Block, error) {
	if len(frame) < 16 {
		return nil, fmt.Errorf("vec: block frame too short (%d bytes)", len(frame))
	}
	if magic := binary.LittleEndian.Uint32(frame[0:]); magic != frameMagic {
		return nil, fmt.Errorf("vec: bad block frame magic %#x", magic)
	}
	rawLen := binary.LittleEndian.Uint32(frame[4:])
	sum := binary.LittleEndian.Uint64(frame[8:])

	body, err := zstdDecoder.DecodeAll(frame[16:], make([]byte, 0, rawLen))
	if err != nil {
		return nil, fmt.Errorf("vec: decompressing block frame: %w", err)
	}
	if uint32(len(body)) != rawLen {
		return nil, fmt.Errorf("vec: block frame declares %d bytes, decoded %d", rawLen, len(body))
	}
	if got := siphash.Hash(sipK0, sipK1, body); got != sum {
		return nil, fmt.Errorf("vec: block frame checksum mismatch (%#x != %#x)", got, sum)
	}
	return parseBody(body)
}

func appendBody(dst []byte, b *Block) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, uint16(b.Columns()))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.Rows()))
	for i := 0; i < b.Columns(); i++ {
		dst = appendColumn(dst, b.Column(i))
	}
	return dst
}

func appendColumn(dst []byte, c Column) []byte {
	dst = append(dst, byte(c.Type()))
	nulls := nullsOf(c)
	if nulls == nil {
		dst = append(dst, 0)
	} else {
		dst = append(dst, 1)
		for _, isnull := range nulls {
			if isnull {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	}
	switch col := c.(type) {
	case *Int64Column:
		for _, v := range col.Values {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
		}
	case *Float64Column:
		for _, v := range col.Values {
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
		}
	case *BoolColumn:
		for _, v := range col.Values {
			if v {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	case *StringColumn:
		for _, v := range col.Values {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v)))
			dst = append(dst, v...)
		}
	}
	return dst
}

func nullsOf(c Column) []bool {
	switch col := c.(type) {
	case *Int64Column:
		return col.Nulls
	case *Float64Column:
		return col.Nulls
	case *BoolColumn:
		return col.Nulls
	case *StringColumn:
		return col.Nulls
	}
	return nil
}

func parseBody(body []byte) (*Block, error) {
	if len(body) < 6 {
		return nil, fmt.Errorf("vec: truncated block body")
	}
	ncols := int(binary.LittleEndian.Uint16(body[0:]))
	nrows := int(binary.LittleEndian.Uint32(body[2:]))
	body = body[6:]

	cols := make([]Column, ncols)
	for i := range cols {
		col, rest, err := parseColumn(body, nrows)
		if err != nil {
			return nil, fmt.Errorf("vec: column %d: %w", i, err)
		}
		cols[i] = col
		body = rest
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("vec: %d trailing bytes in block body", len(body))
	}
	return NewBlock(cols...), nil
}

func parseColumn(body []byte, nrows int) (Column, []byte, error) {
	if len(body) < 2 {
		return nil, nil, fmt.Errorf("truncated column header")
	}
	typ := Type(body[0])
	hasNulls := body[1] == 1
	body = body[2:]

	var nulls []bool
	if hasNulls {
		if len(body) < nrows {
			return nil, nil, fmt.Errorf("truncated null map")
		}
		nulls = make([]bool, nrows)
		for i := 0; i < nrows; i++ {
			nulls[i] = body[i] == 1
		}
		body = body[nrows:]
	}

	switch typ {
	case Int64:
		if len(body) < nrows*8 {
			return nil, nil, fmt.Errorf("truncated int64 payload")
		}
		vals := make([]int64, nrows)
		for i := range vals {
			vals[i] = int64(binary.LittleEndian.Uint64(body[i*8:]))
		}
		return &Int64Column{Values: vals, Nulls: nulls}, body[nrows*8:], nil
	case Float64:
		if len(body) < nrows*8 {
			return nil, nil, fmt.Errorf("truncated float64 payload")
		}
		vals := make([]float64, nrows)
		for i := range vals {
			vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[i*8:]))
		}
		return &Float64Column{Values: vals, Nulls: nulls}, body[nrows*8:], nil
	case Bool:
		if len(body) < nrows {
			return nil, nil, fmt.Errorf("truncated bool payload")
		}
		vals := make([]bool, nrows)
		for i := range vals {
			vals[i] = body[i] == 1
		}
		return &BoolColumn{Values: vals, Nulls: nulls}, body[nrows:], nil
	case String:
		vals := make([]string, nrows)
		for i := range vals {
			if len(body) < 4 {
				return nil, nil, fmt.Errorf("truncated string length")
			}
			n := int(binary.LittleEndian.Uint32(body))
			body = body[4:]
			if len(body) < n {
				return nil, nil, fmt.Errorf("truncated string payload")
			}
			vals[i] = string(body[:n])
			body = body[n:]
		}
		return &StringColumn{Values: vals, Nulls: nulls}, body, nil
	}
	return nil, nil, fmt.Errorf("unknown column type %d", typ)
}
