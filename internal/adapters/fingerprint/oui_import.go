package fingerprint

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// OUIEntry is one registry assignment.
type OUIEntry struct {
	Prefix string // XX:XX:XX
	Vendor string
}

// ParseIEEECSV reads the IEEE registry CSV
// (Registry,Assignment,Organization Name,Organization Address).
func ParseIEEECSV(r io.Reader, short bool) ([]OUIEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var entries []OUIEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: "ieee csv", Line: line, Err: err}
		}
		if len(record) < 3 {
			continue
		}
		if e, ok := newEntry(record[1], record[2], short); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ParseWiresharkManuf reads a Wireshark manuf file
// (XX:XX:XX<tab>ShortName<tab>LongName). Entries with a mask are skipped.
func ParseWiresharkManuf(r io.Reader, short bool) ([]OUIEntry, error) {
	scanner := bufio.NewScanner(r)
	var entries []OUIEntry

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || strings.Contains(parts[0], "/") {
			continue
		}
		vendor := parts[1]
		if len(parts) >= 3 && !short {
			vendor = parts[2]
		}
		// The short column is already abbreviated.
		if e, ok := newEntry(parts[0], vendor, false); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Source: "manuf", Err: err}
	}
	return entries, nil
}

// WriteOUIFile writes entries sorted by prefix in the "XX:XX:XX Vendor"
// format understood by FileVendorRepository. Later duplicates win.
func WriteOUIFile(w io.Writer, entries []OUIEntry) (int, error) {
	merged := make(map[string]string, len(entries))
	for _, e := range entries {
		merged[e.Prefix] = e.Vendor
	}
	prefixes := make([]string, 0, len(merged))
	for p := range merged {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	bw := bufio.NewWriter(w)
	for _, p := range prefixes {
		if _, err := fmt.Fprintf(bw, "%s %s\n", p, merged[p]); err != nil {
			return 0, err
		}
	}
	return len(prefixes), bw.Flush()
}

func newEntry(prefix, vendor string, short bool) (OUIEntry, bool) {
	p := normalizePrefix(prefix)
	vendor = strings.Join(strings.Fields(vendor), " ")
	if short {
		vendor = ShortVendor(vendor)
	}
	if p == "" || vendor == "" {
		return OUIEntry{}, false
	}
	return OUIEntry{Prefix: p, Vendor: vendor}, true
}

// normalizePrefix converts the common prefix spellings to XX:XX:XX.
func normalizePrefix(prefix string) string {
	digits := strings.NewReplacer(":", "", "-", "", ".", "", " ", "").Replace(strings.TrimSpace(prefix))
	if len(digits) < 6 {
		return ""
	}
	addr, err := ParseMAC(digits[:6] + "000000")
	if err != nil {
		return ""
	}
	return addr.OUI()
}

var vendorSuffixes = []string{
	" Co., Ltd.", " Co.,Ltd.", " Inc.", " Inc", " Corporation", " Corp.", " Corp",
	" Ltd.", " Ltd", " Limited", " Co.", " LLC", " GmbH", " S.A.", " AG",
}

// ShortVendor trims legal suffixes and anything after the first comma.
func ShortVendor(vendor string) string {
	vendor = strings.TrimSpace(vendor)
	if idx := strings.Index(vendor, ","); idx > 0 {
		vendor = vendor[:idx]
	}
	for _, s := range vendorSuffixes {
		vendor = strings.TrimSuffix(vendor, s)
	}
	return strings.TrimSpace(vendor)
}
