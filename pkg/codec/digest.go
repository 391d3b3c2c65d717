package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/aretw0/algebra/pkg/domain"
)

// Digest returns a stable hash of a tree, salted with the settings that
// change how it reduces. Structurally equal trees share a digest.
func Digest(n *domain.Node, salt string) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte{0})
	// Encoding a Document cannot fail.
	data, _ := json.Marshal(Encode(n))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
