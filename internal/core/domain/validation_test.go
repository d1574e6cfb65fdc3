package domain

import "testing"

func TestIsValidMAC(t *testing.T) {
	tests := []struct {
		mac   string
		valid bool
	}{
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"00:11:22:33:44:55", true},
		{"invalid", false},
		{"AA:BB:CC:DD:EE", false},
		{"AA:BB:CC:DD:EE:FF:GG", false},
		{"", false},
	}

	for _, tt := range tests {
		if IsValidMAC(tt.mac) != tt.valid {
			t.Errorf("IsValidMAC(%s) = %v; want %v", tt.mac, IsValidMAC(tt.mac), tt.valid)
		}
	}
}

func TestIsValidServiceID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"7", true},
		{"svc-1", true},
		{"guest_5g.2", true},
		{"../admin", false},
		{"a/b", false},
		{"a b", false},
		{"0123456789012345678901234567890123456789012345678901234567890123456789", false}, // > 64 chars
		{"", false},
	}

	for _, tt := range tests {
		if IsValidServiceID(tt.id) != tt.valid {
			t.Errorf("IsValidServiceID(%s) = %v; want %v", tt.id, IsValidServiceID(tt.id), tt.valid)
		}
	}
}
