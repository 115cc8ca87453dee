package export

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/printspec"
)

const (
	pngSignatureLen = 8
	ihdrChunkLen    = 4 + 4 + 13 + 4
	physDataLen     = 9
	physUnitMeter   = 1
)

// EncodePNG encodes img as PNG and records dpi in a pHYs chunk so print
// tools pick up the physical size.
func EncodePNG(img image.Image, dpi float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "encode png")
	}
	return insertPhys(buf.Bytes(), dpi)
}

// insertPhys places a pHYs chunk right after IHDR.
func insertPhys(data []byte, dpi float64) ([]byte, error) {
	at := pngSignatureLen + ihdrChunkLen
	if len(data) < at || string(data[pngSignatureLen+4:pngSignatureLen+8]) != "IHDR" {
		return nil, errors.New(errors.ErrCodeUnknown, "encoder produced a malformed png")
	}

	ppm := uint32(math.Round(dpi / printspec.MMPerInch * 1000))
	payload := make([]byte, physDataLen)
	binary.BigEndian.PutUint32(payload[0:4], ppm)
	binary.BigEndian.PutUint32(payload[4:8], ppm)
	payload[8] = physUnitMeter

	chunk := make([]byte, 0, 12+physDataLen)
	chunk = binary.BigEndian.AppendUint32(chunk, physDataLen)
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:at]...)
	out = append(out, chunk...)
	out = append(out, data[at:]...)
	return out, nil
}

// ReadDPI returns the resolution stored in a PNG's pHYs chunk.
// The value is rounded to a tenth of a dot since pHYs stores whole dots
// per metre. ok is false when the chunk is missing or not in metres.
func ReadDPI(data []byte) (dpi float64, ok bool) {
	pos := pngSignatureLen
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		if pos+12+n > len(data) {
			return 0, false
		}
		if typ == "pHYs" && n == physDataLen {
			body := data[pos+8 : pos+8+n]
			if body[8] != physUnitMeter {
				return 0, false
			}
			ppm := float64(binary.BigEndian.Uint32(body[0:4]))
			return math.Round(ppm*printspec.MMPerInch/1000*10) / 10, true
		}
		if typ == "IDAT" || typ == "IEND" {
			return 0, false
		}
		pos += 12 + n
	}
	return 0, false
}
