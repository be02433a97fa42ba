package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// Parse converts "Key: Value" strings into a header map with canonical keys.
// Later entries win over earlier ones with the same key.
func Parse(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header %q: expected \"Key: Value\"", hdr)
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("invalid header %q: empty name", hdr)
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(parts[1])
	}
	return m, nil
}
