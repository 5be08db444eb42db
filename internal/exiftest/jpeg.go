// Package exiftest builds minimal JPEG images with embedded EXIF metadata,
// so extraction code can be exercised against known tag values without
// binary fixture files.
package exiftest

import (
	"encoding/binary"
	"math"
)

const exifHeader = "Exif\x00\x00"

const tiffHeaderLen = 8

// TIFF data types used by the generated entries.
const (
	typeASCII    = 2
	typeLong     = 4
	typeRational = 5
)

const (
	tagMake       = 0x010F
	tagModel      = 0x0110
	tagDateTime   = 0x0132
	tagGPSPointer = 0x8825

	tagGPSLatitudeRef  = 0x0001
	tagGPSLatitude     = 0x0002
	tagGPSLongitudeRef = 0x0003
	tagGPSLongitude    = 0x0004
)

// Fields selects the EXIF tags embedded in a generated image. Empty string
// fields are omitted from the directory entirely.
type Fields struct {
	Make     string
	Model    string
	DateTime string

	// GPS switches on a GPS sub-directory holding Latitude and Longitude,
	// given in signed decimal degrees.
	GPS       bool
	Latitude  float64
	Longitude float64
}

// JPEG assembles a minimal image: SOI, one APP1 segment carrying the EXIF
// payload, EOI. The segment length is big-endian and counts itself per the
// JPEG convention.
func JPEG(f Fields) []byte {
	tiff := encodeTIFF(f)
	payload := append([]byte(exifHeader), tiff...)
	length := len(payload) + 2

	out := []byte{0xFF, 0xD8, 0xFF, 0xE1, byte(length >> 8), byte(length)}
	out = append(out, payload...)
	return append(out, 0xFF, 0xD9)
}

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

func asciiEntry(tag uint16, s string) entry {
	v := append([]byte(s), 0)
	return entry{tag: tag, typ: typeASCII, count: uint32(len(v)), value: v}
}

func longEntry(tag uint16, v uint32) entry {
	value := binary.LittleEndian.AppendUint32(nil, v)
	return entry{tag: tag, typ: typeLong, count: 1, value: value}
}

func rationalEntry(tag uint16, rats [][2]uint32) entry {
	value := make([]byte, 0, len(rats)*8)
	for _, r := range rats {
		value = binary.LittleEndian.AppendUint32(value, r[0])
		value = binary.LittleEndian.AppendUint32(value, r[1])
	}
	return entry{tag: tag, typ: typeRational, count: uint32(len(rats)), value: value}
}

func encodeTIFF(f Fields) []byte {
	var ifd0 []entry
	if f.Make != "" {
		ifd0 = append(ifd0, asciiEntry(tagMake, f.Make))
	}
	if f.Model != "" {
		ifd0 = append(ifd0, asciiEntry(tagModel, f.Model))
	}
	if f.DateTime != "" {
		ifd0 = append(ifd0, asciiEntry(tagDateTime, f.DateTime))
	}

	var gps []entry
	if f.GPS {
		latRef, lat := refAndMagnitude(f.Latitude, "N", "S")
		longRef, long := refAndMagnitude(f.Longitude, "E", "W")
		gps = []entry{
			asciiEntry(tagGPSLatitudeRef, latRef),
			rationalEntry(tagGPSLatitude, degreeRationals(lat)),
			asciiEntry(tagGPSLongitudeRef, longRef),
			rationalEntry(tagGPSLongitude, degreeRationals(long)),
		}

		// Placeholder first: the pointer entry itself grows the main
		// directory, which fixes the offset stored in it.
		ifd0 = append(ifd0, longEntry(tagGPSPointer, 0))
		ifd0[len(ifd0)-1] = longEntry(tagGPSPointer, tiffHeaderLen+ifdSize(ifd0))
	}

	le := binary.LittleEndian
	out := []byte{'I', 'I'}
	out = le.AppendUint16(out, 42)
	out = le.AppendUint32(out, tiffHeaderLen)
	out = append(out, encodeIFD(tiffHeaderLen, ifd0, 0)...)
	if f.GPS {
		out = append(out, encodeIFD(tiffHeaderLen+ifdSize(ifd0), gps, 0)...)
	}
	return out
}

// ifdSize returns the encoded size of a directory block: the entry table
// plus the overflow area for values wider than four bytes.
func ifdSize(entries []entry) uint32 {
	size := uint32(2 + 12*len(entries) + 4)
	for _, e := range entries {
		if len(e.value) > 4 {
			size += uint32(len(e.value))
		}
	}
	return size
}

// encodeIFD writes the entry table placed at base (an offset from the TIFF
// header) with overflow values packed directly behind it.
func encodeIFD(base uint32, entries []entry, next uint32) []byte {
	le := binary.LittleEndian
	tableLen := uint32(2 + 12*len(entries) + 4)

	out := make([]byte, 0, ifdSize(entries))
	out = le.AppendUint16(out, uint16(len(entries)))

	var overflow []byte
	for _, e := range entries {
		out = le.AppendUint16(out, e.tag)
		out = le.AppendUint16(out, e.typ)
		out = le.AppendUint32(out, e.count)
		if len(e.value) > 4 {
			out = le.AppendUint32(out, base+tableLen+uint32(len(overflow)))
			overflow = append(overflow, e.value...)
		} else {
			padded := make([]byte, 4)
			copy(padded, e.value)
			out = append(out, padded...)
		}
	}
	out = le.AppendUint32(out, next)
	return append(out, overflow...)
}

// degreeRationals encodes a coordinate magnitude as degree, minute, and
// second rationals. The full value is carried in the degrees slot at
// micro-degree precision, leaving minutes and seconds zero.
func degreeRationals(deg float64) [][2]uint32 {
	return [][2]uint32{
		{uint32(math.Round(deg * 1e6)), 1000000},
		{0, 1},
		{0, 1},
	}
}

func refAndMagnitude(v float64, pos, neg string) (string, float64) {
	if v < 0 {
		return neg, -v
	}
	return pos, v
}
