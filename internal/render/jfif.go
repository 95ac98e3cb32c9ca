package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// jfifHeaderLen is the full APP0 segment length including the marker.
const jfifHeaderLen = 18

// withDensity returns the JPEG stream with its JFIF pixel density set to
// dpi in both axes. The stdlib encoder emits no APP0 segment, so one is
// spliced in right after SOI; if a JFIF header is already present its
// density fields are patched in place. Printers read this tag to map the
// raster onto physical paper dimensions.
func withDensity(jpegBytes []byte, dpi int) ([]byte, error) {
	if len(jpegBytes) < 4 || jpegBytes[0] != 0xFF || jpegBytes[1] != 0xD8 {
		return nil, fmt.Errorf("not a JPEG stream")
	}

	// JFIF APP0 directly after SOI: units at offset 13, X/Y density after.
	if len(jpegBytes) >= 2+jfifHeaderLen && jpegBytes[2] == 0xFF && jpegBytes[3] == 0xE0 &&
		bytes.Equal(jpegBytes[6:11], []byte("JFIF\x00")) {
		out := append([]byte(nil), jpegBytes...)
		out[13] = 0x01 // density units: dots per inch
		binary.BigEndian.PutUint16(out[14:16], uint16(dpi))
		binary.BigEndian.PutUint16(out[16:18], uint16(dpi))
		return out, nil
	}

	app0 := [jfifHeaderLen]byte{
		0xFF, 0xE0, // APP0 marker
		0x00, 0x10, // segment length (16, excluding the marker)
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // JFIF version 1.02
		0x01,       // density units: dots per inch
		0x00, 0x00, // X density, filled below
		0x00, 0x00, // Y density, filled below
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(app0[12:14], uint16(dpi))
	binary.BigEndian.PutUint16(app0[14:16], uint16(dpi))

	out := make([]byte, 0, len(jpegBytes)+jfifHeaderLen)
	out = append(out, jpegBytes[:2]...)
	out = append(out, app0[:]...)
	out = append(out, jpegBytes[2:]...)
	return out, nil
}
