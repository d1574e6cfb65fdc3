package fingerprint

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ieeeSample = `Registry,Assignment,Organization Name,Organization Address
MA-L,F0D1A9,"Apple, Inc.",1 Infinite Loop Cupertino CA US 95014
MA-L,00000C,Cisco Systems Inc,170 West Tasman Dr. San Jose CA US 95134
MA-L,ZZZZZZ,Broken Row,Nowhere
MA-L,001A11,Google LLC,1600 Amphitheatre Parkway Mountain View CA US 94043
`

const manufSample = `# Wireshark manuf
00:00:0C	Cisco	Cisco Systems, Inc
F0:D1:A9	Apple	Apple, Inc.
00:1B:C5:00:00:00/36	Convergi	Converging Systems Inc.

00:1A:11	Google	Google, Inc.
`

func TestParseIEEECSV(t *testing.T) {
	entries, err := ParseIEEECSV(strings.NewReader(ieeeSample), false)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, OUIEntry{Prefix: "F0:D1:A9", Vendor: "Apple, Inc."}, entries[0])

	short, err := ParseIEEECSV(strings.NewReader(ieeeSample), true)
	require.NoError(t, err)
	assert.Equal(t, "Apple", short[0].Vendor)
	assert.Equal(t, "Cisco Systems", short[1].Vendor)
	assert.Equal(t, "Google", short[2].Vendor)
}

func TestParseIEEECSV_EmptyInput(t *testing.T) {
	_, err := ParseIEEECSV(strings.NewReader(""), false)
	assert.Error(t, err)
}

func TestParseWiresharkManuf(t *testing.T) {
	entries, err := ParseWiresharkManuf(strings.NewReader(manufSample), true)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, OUIEntry{Prefix: "00:00:0C", Vendor: "Cisco"}, entries[0])

	long, err := ParseWiresharkManuf(strings.NewReader(manufSample), false)
	require.NoError(t, err)
	assert.Equal(t, "Cisco Systems, Inc", long[0].Vendor)
}

func TestShortVendor(t *testing.T) {
	tests := map[string]string{
		"Apple, Inc.":                     "Apple",
		"Huawei Technologies Co.,Ltd":     "Huawei Technologies",
		"Ubiquiti Inc":                    "Ubiquiti",
		"Samsung Electronics Co., Ltd.":   "Samsung Electronics",
		"AVM Audiovisuelles Marketing AG": "AVM Audiovisuelles Marketing",
		"Espressif":                       "Espressif",
	}
	for in, want := range tests {
		assert.Equal(t, want, ShortVendor(in), in)
	}
}

func TestWriteOUIFile_RoundTripsThroughFileRepository(t *testing.T) {
	entries := []OUIEntry{
		{Prefix: "F0:D1:A9", Vendor: "Apple"},
		{Prefix: "00:00:0C", Vendor: "Cisco"},
		{Prefix: "F0:D1:A9", Vendor: "Apple Inc"},
	}

	var buf bytes.Buffer
	n, err := WriteOUIFile(&buf, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "00:00:0C Cisco\nF0:D1:A9 Apple Inc\n", buf.String())

	repo := NewFileVendorRepository()
	loaded, err := repo.Load(&buf, "generated")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)

	vendor, err := repo.LookupVendor(context.Background(), MustParseMAC("f0:d1:a9:12:34:56"))
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", vendor)
}
