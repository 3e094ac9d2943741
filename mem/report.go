package mem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var iecUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// maxFracDigits bounds the fraction FormatBytes prints.
const maxFracDigits = 10

// FormatBytes renders n with the largest binary unit U such that n >= 1 U.
// Whole multiples print without a fraction ("1 KiB"). Other values print
// their decimal fraction truncated to maxFracDigits digits with trailing
// zeros dropped ("1.5 KiB"), and always keep at least one decimal place.
func FormatBytes(n uint64) string {
	unit := 0
	for unit+1 < len(iecUnits) && n >= uint64(1)<<(10*(unit+1)) {
		unit++
	}
	shift := uint(10 * unit)
	mask := uint64(1)<<shift - 1

	s := strconv.FormatUint(n>>shift, 10)
	if rem := n & mask; rem != 0 {
		// rem < 2^60, so rem*10 cannot overflow.
		frac := make([]byte, 0, maxFracDigits)
		for len(frac) < maxFracDigits && rem != 0 {
			rem *= 10
			frac = append(frac, byte('0'+rem>>shift))
			rem &= mask
		}
		f := strings.TrimRight(string(frac), "0")
		if f == "" {
			f = "0"
		}
		s += "." + f
	}
	return s + " " + iecUnits[unit]
}

// GetMemoryUsage renders the process-wide ledger as a usage report.
func GetMemoryUsage() string {
	return defaultLedger.Report()
}

// Report renders one row per tag in declaration order, a dashed rule and a
// Total row. Labels are right-aligned to the longest of the tag names and
// "Total". The counters are read as a best-effort snapshot.
func (l *Ledger) Report() string {
	const totalLabel = "Total"

	align := len(totalLabel)
	for _, name := range tagNames {
		align = max(align, len(name))
	}
	rule := align + 2 + len(FormatBytes(math.MaxUint64))

	u := l.Snapshot()

	var b strings.Builder
	b.Grow((rule + 2) * (NumTags + 3))
	b.WriteString("System memory use (tagged):\n")
	for _, tag := range Tags() {
		fmt.Fprintf(&b, "\t%*s: %s\n", align, tag.String(), FormatBytes(u.Tagged[tag]))
	}
	b.WriteByte('\t')
	b.WriteString(strings.Repeat("-", rule))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "\t%*s: %s\n", align, totalLabel, FormatBytes(u.Total))
	return b.String()
}
