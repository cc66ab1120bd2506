package convert

import (
	"encoding/binary"
	"fmt"

	"github.com/tormoder/fit/dyncrc16"
)

const (
	fitHeaderSizeNoCRC = 12
	fitHeaderSizeCRC   = 14
)

// fitPreflight validates the FIT header and, when the declared data section
// is fully present, checks the trailing file CRC. A malformed header is a
// hard error; CRC disagreement degrades to warnings so a slightly damaged
// file still converts.
func fitPreflight(data []byte) ([]Warning, error) {
	if len(data) < fitHeaderSizeNoCRC+2 {
		return nil, fmt.Errorf("fit file too short: %d bytes", len(data))
	}

	size := data[0]
	if size != fitHeaderSizeNoCRC && size != fitHeaderSizeCRC {
		return nil, fmt.Errorf("invalid fit header size: %d", size)
	}
	if len(data) < int(size) {
		return nil, fmt.Errorf("truncated fit header: need %d bytes", size)
	}
	if string(data[8:12]) != ".FIT" {
		return nil, fmt.Errorf("invalid fit data type in header: %q", string(data[8:12]))
	}

	var warnings []Warning

	if size == fitHeaderSizeCRC {
		stored := binary.LittleEndian.Uint16(data[12:14])
		if stored != 0 && stored != dyncrc16.Checksum(data[:12]) {
			warnings = append(warnings, dataQualityIssue("fit header CRC mismatch"))
		}
	}

	dataSize := binary.LittleEndian.Uint32(data[4:8])
	end := int(size) + int(dataSize)
	if end+2 <= len(data) {
		stored := binary.LittleEndian.Uint16(data[end : end+2])
		if stored != dyncrc16.Checksum(data[:end]) {
			warnings = append(warnings, dataQualityIssue("fit file CRC mismatch"))
		}
	}

	return warnings, nil
}
