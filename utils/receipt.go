// utils/receipt.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReceiptNumber returns a settlement receipt identifier such as
// "LIQ-20240131-9F4C21AB". The random suffix keeps numbers unique without
// a counter round-trip to the database.
func GenerateReceiptNumber(issuedAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("LIQ-%s-%s", issuedAt.Format("20060102"), suffix)
}
