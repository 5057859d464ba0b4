package output

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ezrec/sym6502/label"
)

// listingBase is the lowest address in the label listing, and the
// origin of the listed offsets.
const listingBase = 0x8000

// listed returns true for a label that appears in the label listing.
func listed(entry label.Entry) bool {
	name := entry.Name
	if !label.IsGlobal(name) || strings.Contains(name, ".") {
		return false
	}
	if unicode.IsUpper(rune(name[0])) {
		return false
	}
	return entry.Address.Value >= listingBase
}

// WriteLabels writes the debug label listing, one `P:offset:name` line per
// global label at or above $8000, in address order.
func WriteLabels(w io.Writer, labels *label.Table) (err error) {
	if labels == nil {
		return
	}

	for entry := range labels.Entries() {
		if !listed(entry) {
			continue
		}
		_, err = fmt.Fprintf(w, "P:%04X:%v\n", entry.Address.Value-listingBase, entry.Name)
		if err != nil {
			return
		}
	}

	return
}
