package normaliser

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashLength is the number of hex characters kept from the digest.
// Short enough to read in output, long enough that collisions between
// tracked nodes are not a practical concern.
const hashLength = 16

// ContentHash digests a canonical string together with the ordered
// hashes of any variants. For plain nodes the variant list is empty;
// for variant sets the parent hash changes whenever any variant
// changes, is added, removed, or reordered.
func ContentHash(canonical string, variantHashes ...string) string {
	h := sha256.New()
	h.Write([]byte(canonical))
	for _, vh := range variantHashes {
		h.Write([]byte(vh))
	}
	return hex.EncodeToString(h.Sum(nil))[:hashLength]
}
