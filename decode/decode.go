// Package decode implements CSS Syntax Level 3 §3.1's "decode from
// bytes" algorithm: turning raw bytes plus optional out-of-band
// encoding labels into text, via BOM sniffing, protocol/environment
// encoding, and a sniffed `@charset "..."` rule.
//
// Charset label resolution and the actual byte transcoding are
// delegated to the same third-party stack go-gitea-gitea's
// modules/charset wires for the same job: golang.org/x/net/html/charset
// for WHATWG label lookup and golang.org/x/text/transform for the
// decode itself, so that this package carries no hand-rolled encoding
// table.
package decode

import (
	"bytes"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode turns data into text following CSS Syntax 3 §3.1's algorithm,
// in order, first hit wins:
//
//  1. A UTF-8 BOM selects UTF-8 (BOM stripped).
//  2. A UTF-16 BE/LE BOM selects that encoding (BOM stripped).
//  3. protocolEncoding, if it resolves to a known label.
//  4. A sniffed leading `@charset "label";` byte pattern, if label
//     resolves to a known encoding.
//  5. environmentEncoding, if it resolves to a known label.
//  6. UTF-8.
//
// Decode never errors: undecodable byte sequences are replaced with
// U+FFFD, matching go-gitea-gitea's ToUTF8DropErrors fallback pattern
// rather than surfacing a transcoding error to the caller.
func Decode(data []byte, protocolEncoding, environmentEncoding string) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return decodeWith(data[len(bomUTF8):], "utf-8")
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(data[len(bomUTF16BE):], "utf-16be")
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(data[len(bomUTF16LE):], "utf-16le")
	}
	if protocolEncoding != "" {
		if _, ok := lookup(protocolEncoding); ok {
			return decodeWith(data, protocolEncoding)
		}
	}
	if label, ok := sniffCharsetRule(data); ok {
		if _, ok := lookup(label); ok {
			return decodeWith(data, label)
		}
	}
	if environmentEncoding != "" {
		if _, ok := lookup(environmentEncoding); ok {
			return decodeWith(data, environmentEncoding)
		}
	}
	return decodeWith(data, "utf-8")
}

// sniffCharsetRule matches a leading `@charset "..."` byte pattern per
// spec.md §4.1 step 4: ASCII-only, exactly `@charset "`, one or more
// bytes up to `";`.
func sniffCharsetRule(data []byte) (label string, ok bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return "", false
	}
	rest := data[len(prefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 {
		return "", false
	}
	return string(rest[:end]), true
}

// lookup resolves a charset label to an encoding.Encoding, via the
// WHATWG label table for everything except the two UTF-16 spellings
// that table resolves to a BOM-sniffing variant we don't want here
// (CSS Syntax 3 only reaches UTF-16 through explicit BOM detection or
// an explicit label, never content sniffing).
func lookup(label string) (encoding.Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), true
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), true
	}
	enc, _ := charset.Lookup(label)
	return enc, enc != nil
}

func decodeWith(data []byte, label string) string {
	enc, ok := lookup(label)
	if !ok {
		enc = encoding.Nop
	}
	out, n, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		// Never fail: keep what decoded and drop the undecodable tail
		// in as raw bytes, then let ToValidUTF8 replace the damage.
		out = append(out, data[n:]...)
	}
	return string(bytes.ToValidUTF8(out, []byte("�")))
}
