package source

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// LoadText reads all of r, applying the same defensive charset-mismatch
// detection as the teacher's content.makeCharsetReader: a source whose
// caller declares a non-UTF-8 label but whose bytes are actually valid
// UTF-8 is accepted with a warning rather than being mis-transcoded;
// genuinely non-UTF-8 input is transcoded via golang.org/x/net/html's
// charset package, matching SPEC_FULL.md's domain stack entry for Source (A).
func LoadText(r io.Reader, declaredLabel string, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	const peekSize = 2048
	buf, err := io.ReadAll(io.LimitReader(r, peekSize))
	if err != nil {
		return "", fmt.Errorf("unable to peek at source content: %w", err)
	}
	restored := io.MultiReader(bytes.NewReader(buf), r)

	if declaredLabel == "" || declaredLabel == "utf-8" {
		data, err := io.ReadAll(restored)
		if err != nil {
			return "", fmt.Errorf("unable to read source: %w", err)
		}
		return string(data), nil
	}

	checkBuf := trimIncompleteUTF8(buf)
	if utf8.Valid(checkBuf) && containsNonASCII(checkBuf) {
		log.Warn("source declares a non-UTF-8 encoding but content is valid UTF-8, ignoring declared encoding",
			zap.String("declared", declaredLabel))
		data, err := io.ReadAll(restored)
		if err != nil {
			return "", fmt.Errorf("unable to read source: %w", err)
		}
		return string(data), nil
	}

	decoded, err := charset.NewReaderLabel(declaredLabel, restored)
	if err != nil {
		return "", fmt.Errorf("unable to decode source as %q: %w", declaredLabel, err)
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("unable to read decoded source: %w", err)
	}
	return string(data), nil
}

// trimIncompleteUTF8 returns buf with any trailing incomplete multi-byte
// UTF-8 sequence removed, needed because a fixed-size peek buffer can
// split a multi-byte rune at the boundary.
func trimIncompleteUTF8(buf []byte) []byte {
	if len(buf) == 0 || buf[len(buf)-1] < 0x80 {
		return buf
	}
	i := len(buf) - 1
	for i > 0 && i > len(buf)-4 && buf[i]&0xC0 == 0x80 {
		i--
	}
	r, _ := utf8.DecodeRune(buf[i:])
	if r == utf8.RuneError {
		return buf[:i]
	}
	return buf
}

// containsNonASCII reports whether buf contains at least one byte > 0x7F.
func containsNonASCII(buf []byte) bool {
	for _, b := range buf {
		if b > 0x7F {
			return true
		}
	}
	return false
}
