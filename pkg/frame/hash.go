package frame

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ColumnHash computes a stable fingerprint of a table's column names: the
// SHA-256 hex digest of the names concatenated in order, no separator.
// Row content never affects the hash; it is a structural fingerprint, so
// two tables with identical schemas but different data hash identically.
func ColumnHash(t Table) string {
	return ColumnHashOf(t.Columns())
}

// ColumnHashOf computes the column-name fingerprint from a name list,
// for sources that know their columns without materializing a table.
func ColumnHashOf(cols []string) string {
	joined := strings.Join(cols, "")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
