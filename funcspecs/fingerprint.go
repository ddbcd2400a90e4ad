package funcspecs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// Fingerprint digests a Spec into a stable cache key. Equal specs always
// produce equal fingerprints; example order is significant.
func Fingerprint(spec Spec) string {
	h := sha256.New()
	writeField(h, spec.Description)
	writeField(h, spec.TemplateVersion)
	for _, example := range spec.Examples {
		writeField(h, example)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		// best effort for values JSON cannot encode
		data = fmt.Appendf(nil, "%#v", value)
	}
	w.Write(data)
	w.Write([]byte{0})
}
