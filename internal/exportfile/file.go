package exportfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

// MaxFileSize bounds what Decode accepts.
const MaxFileSize = 4 << 20

// Encode renders the file as indented JSON.
func Encode(f *model.EncryptedExportFile) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Decode parses an export file. Unknown fields are rejected.
func Decode(raw []byte) (*model.EncryptedExportFile, error) {
	if len(raw) > MaxFileSize {
		return nil, errs.Validation("decode export", fmt.Errorf("%w: file too large", errs.ErrMalformedFile))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var f model.EncryptedExportFile
	if err := dec.Decode(&f); err != nil {
		return nil, errs.Validation("decode export", fmt.Errorf("%w: %v", errs.ErrMalformedFile, err))
	}
	return &f, nil
}

// DefaultFileName encodes the format, device and UTC time, e.g.
// keystore-export-v1_alpha-linux_20250601T100000Z.json.
func DefaultFileName(deviceName string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s.json", Format, sanitize(deviceName), t.UTC().Format("20060102T150405Z"))
}

func sanitize(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > 48 {
		out = strings.TrimRight(out[:48], "-")
	}
	if out == "" {
		return "device"
	}
	return out
}
