package extract

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// plainText decodes a text file. A leading BOM is dropped and invalid
// UTF-8 sequences become U+FFFD.
func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
