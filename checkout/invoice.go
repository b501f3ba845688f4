package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvoiceNumberer hands out the invoice number shared by every line of one
// checkout call.
type InvoiceNumberer interface {
	Next(now time.Time) string
}

// InvoiceNumbers produces INV-<yyyyMMdd>-<HHmm>-<suffix> with an 8 hex digit
// random suffix. Uniqueness is probabilistic; the ledger does not enforce it.
type InvoiceNumbers struct{}

func (InvoiceNumbers) Next(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "INV-" + now.Format("20060102-1504") + "-" + strings.ToUpper(suffix)
}
