package fingerprint

import (
	"bufio"
	"context"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"sync"
)

// FileVendorRepository serves vendors loaded from OUI text files
type FileVendorRepository struct {
	vendors map[string]string
	mu      sync.RWMutex
}

// NewFileVendorRepository creates an empty file-based vendor repository
func NewFileVendorRepository() *FileVendorRepository {
	return &FileVendorRepository{
		vendors: make(map[string]string),
	}
}

// LoadFromFile loads OUI data from path. See Load for the accepted formats.
func (f *FileVendorRepository) LoadFromFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &LoadError{Source: path, Err: err}
	}
	defer file.Close()
	return f.Load(file, path)
}

// Load merges OUI lines from r and returns how many prefixes were read.
// Accepted lines:
//
//	00:11:22 Vendor Name
//	00-11-22   (hex)		Vendor Name
//	001122     (base 16)		Vendor Name
//
// Blank lines, comments and lines without a vendor are skipped.
func (f *FileVendorRepository) Load(r io.Reader, source string) (int, error) {
	scanner := bufio.NewScanner(r)
	parsed := make(map[string]string)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if oui, vendor, ok := parseOUILine(line); ok {
			parsed[oui] = vendor
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, &LoadError{Source: source, Err: err}
	}

	f.mu.Lock()
	for k, v := range parsed {
		f.vendors[k] = v
	}
	f.mu.Unlock()

	return len(parsed), nil
}

func parseOUILine(line string) (string, string, bool) {
	prefix, rest, found := strings.Cut(line, " ")
	if !found {
		prefix, rest, found = strings.Cut(line, "\t")
	}
	if !found {
		return "", "", false
	}

	digits := strings.NewReplacer(":", "", "-", "").Replace(prefix)
	raw, err := hex.DecodeString(digits)
	if err != nil || len(raw) != 3 {
		return "", "", false
	}

	rest = strings.TrimSpace(rest)
	for _, marker := range []string{"(hex)", "(base 16)"} {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, marker))
	}
	if rest == "" {
		return "", "", false
	}

	oui := strings.ToUpper(hex.EncodeToString(raw[:1]) + ":" + hex.EncodeToString(raw[1:2]) + ":" + hex.EncodeToString(raw[2:]))
	return oui, rest, true
}

// Len returns the number of loaded prefixes
func (f *FileVendorRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vendors)
}

// LookupVendor implements VendorRepository
func (f *FileVendorRepository) LookupVendor(_ context.Context, mac MACAddress) (string, error) {
	f.mu.RLock()
	vendor, ok := f.vendors[mac.OUI()]
	f.mu.RUnlock()

	if !ok {
		return "", ErrVendorNotFound
	}
	return vendor, nil
}

// Close implements VendorRepository
func (f *FileVendorRepository) Close() error {
	f.mu.Lock()
	f.vendors = make(map[string]string)
	f.mu.Unlock()
	return nil
}
