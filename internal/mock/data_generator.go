// Package mock is an in-process stand-in for the wireless controller API,
// populated with services in every vendor shape the classifier understands.
package mock

import (
	"fmt"
	"math/rand"
)

// Common SSIDs for realistic mock data
var commonSSIDs = []string{
	"HomeNetwork", "NETGEAR-5G", "Starbucks WiFi", "TP-Link_2.4GHz",
	"Linksys", "ATT-WiFi", "Xfinity", "Google Fiber",
	"Office-Network", "Guest-WiFi", "MyWiFi", "Home-2.4G",
	"DIRECT-Printer", "CoffeeShop_Free", "Airport_WiFi", "Hotel-Guest",
}

// Vendor OUI prefixes (first 3 bytes of MAC)
var vendorPrefixes = []string{
	"00:17:F2", // Apple
	"00:12:FB", // Samsung
	"00:1E:BD", // Cisco
	"50:C7:BF", // TP-Link
	"F4:F5:D8", // Google
	"FC:A6:67", // Amazon
	"34:CE:00", // Xiaomi
	"00:13:02", // Intel
	"00:13:A9", // Sony
	"00:1C:62", // LG
}

// Device names for stations
var deviceNames = []string{
	"iPhone-14-Pro", "iPhone-SE", "Galaxy-S22", "Pixel-7",
	"MacBook-Pro", "MacBook-Air", "iPad-Air", "Dell-XPS-13",
	"ThinkPad-X1", "Surface-Laptop", "Echo-Dot", "Nest-Hub",
	"PlayStation-5", "Nintendo-Switch", "Chromecast", "Apple-TV",
}

// privacyShape writes one historical vendor encoding of a security setting
// into a service record.
type privacyShape func(g *Generator, rec map[string]any)

// shapes covers every classification rule, in rule order.
var shapes = []privacyShape{
	func(g *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"WpaSaeElement": map[string]any{
			"pmfMode": "required", "saeMethod": "SaeH2e", "encryptionCipher": "aes", "saePassphrase": g.passphrase(),
		}}
	},
	func(g *Generator, rec map[string]any) {
		rec["WpaEnterpriseElement"] = map[string]any{
			"mode": "aesOnly", "pmfMode": "capable", "fastTransition": true, "fastTransitionDomainId": g.rand.Intn(0xFFFF),
		}
	},
	func(_ *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"WpaEnterpriseElement": map[string]any{"mode": "wpa3mixed"}}
	},
	func(_ *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"WpaEnterpriseElement": map[string]any{"pmfMode": "required", "encryptionCipher": "aes"}}
	},
	func(_ *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"dot1xElement": map[string]any{"radiusServer": "10.0.0.5"}}
	},
	func(g *Generator, rec map[string]any) {
		rec["WpaPskElement"] = map[string]any{"mode": "mixed", "passphrase": g.passphrase()}
	},
	func(g *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"WpaPskElement": map[string]any{
			"mode": "WPA2/3", "pmfMode": "capable", "encryptionCipher": "aes", "passphrase": g.passphrase(),
		}}
	},
	func(_ *Generator, rec map[string]any) {
		rec["mode"] = "owe"
		rec["privacy"] = map[string]any{"OweElement": map[string]any{"transitionSsid": rec["ssid"].(string) + "-open"}}
	},
	func(_ *Generator, rec map[string]any) {
		rec["security"] = map[string]any{"type": "WPA_PSK"}
	},
	func(_ *Generator, rec map[string]any) {
		rec["securityType"] = "WEP104"
	},
	func(_ *Generator, rec map[string]any) {
		rec["encryption"] = "WPA2-AES"
	},
	func(g *Generator, rec map[string]any) {
		rec["psk"] = g.passphrase()
	},
	func(_ *Generator, rec map[string]any) {
		rec["privacy"] = map[string]any{"radiusProfile": "corp-radius"}
	},
	func(_ *Generator, _ map[string]any) {},
}

// ScenarioSize returns the number of services and stations for a scenario.
func ScenarioSize(scenario string) (services, stations int) {
	switch scenario {
	case "crowded":
		return 40, 120
	case "minimal":
		return len(shapes), 4
	default:
		return len(shapes), 20
	}
}

// Generator produces deterministic controller records from a seed.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator; equal seeds yield equal data.
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// Services generates n raw service records. At least one record per
// privacy shape is produced.
func (g *Generator) Services(n int) []map[string]any {
	if n < len(shapes) {
		n = len(shapes)
	}
	out := make([]map[string]any, n)
	for i := range out {
		ssid := fmt.Sprintf("%s-%02d", commonSSIDs[g.rand.Intn(len(commonSSIDs))], i)
		rec := map[string]any{
			"id":                  fmt.Sprintf("svc-%03d", i+1),
			"name":                ssid,
			"ssid":                ssid,
			"enabled":             g.rand.Float32() < 0.9,
			"preAuthIdleTimeout":  300,
			"postAuthIdleTimeout": 1800,
			"sessionTimeout":      86400,
		}
		shapes[i%len(shapes)](g, rec)
		out[i] = rec
	}
	return out
}

// Stations generates n raw station records spread over ssids. Half report
// link rates (in Mbps or bps), the rest only byte counters.
func (g *Generator) Stations(n int, ssids []string) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		rec := map[string]any{
			"mac":      g.mac(),
			"hostname": deviceNames[g.rand.Intn(len(deviceNames))],
			"uptime":   60 + g.rand.Intn(7200),
		}
		if len(ssids) > 0 {
			rec["ssid"] = ssids[g.rand.Intn(len(ssids))]
		}
		switch i % 3 {
		case 0:
			rec["txRate"] = []int{144, 300, 433, 866, 1201}[g.rand.Intn(5)]
			rec["rxRate"] = []int{72, 144, 300, 433, 866}[g.rand.Intn(5)]
		case 1:
			rec["transmittedRate"] = (1 + g.rand.Intn(1200)) * 1_000_000
			rec["receivedRate"] = (1 + g.rand.Intn(1200)) * 1_000_000
		default:
			rec["txBytes"] = g.rand.Int63n(500_000_000)
			rec["rxBytes"] = g.rand.Int63n(2_000_000_000)
		}
		out[i] = rec
	}
	return out
}

// Advance simulates elapsed seconds of traffic on stations in place.
func (g *Generator) Advance(stations []map[string]any, seconds int) {
	for _, st := range stations {
		st["uptime"] = asInt(st["uptime"]) + seconds
		if _, ok := st["txBytes"]; ok {
			st["txBytes"] = asInt64(st["txBytes"]) + int64(seconds)*g.rand.Int63n(200_000)
			st["rxBytes"] = asInt64(st["rxBytes"]) + int64(seconds)*g.rand.Int63n(800_000)
		}
	}
}

func (g *Generator) mac() string {
	// One station in ten uses a private (locally administered) address.
	if g.rand.Float32() < 0.1 {
		return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
			(byte(g.rand.Intn(256))|0x02)&^0x01, g.rand.Intn(256), g.rand.Intn(256),
			g.rand.Intn(256), g.rand.Intn(256), g.rand.Intn(256))
	}
	return fmt.Sprintf("%s:%02X:%02X:%02X", vendorPrefixes[g.rand.Intn(len(vendorPrefixes))],
		g.rand.Intn(256), g.rand.Intn(256), g.rand.Intn(256))
}

func (g *Generator) passphrase() string {
	const letters = "abcdefghijkmnpqrstuvwxyz23456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = letters[g.rand.Intn(len(letters))]
	}
	return string(b)
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
