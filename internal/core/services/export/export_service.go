// Package export writes the normalised inventory as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// ExportJSON writes v as indented JSON
func ExportJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// ExportServicesCSV writes services as CSV with headers. Passphrases are
// never part of a service listing.
func ExportServicesCSV(w io.Writer, services []domain.WirelessService) error {
	writer := csv.NewWriter(w)

	headers := []string{
		"ID", "Name", "SSID", "Enabled",
		"Security", "Kind", "TransitionMode", "Cipher", "PMF", "Strength",
		"MatchedRule",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, s := range services {
		p := s.Profile
		row := []string{
			s.ID,
			s.Name,
			s.SSID,
			strconv.FormatBool(s.Enabled),
			p.DisplayName(),
			string(p.Kind),
			strconv.FormatBool(p.TransitionMode),
			string(p.Cipher),
			string(p.PMF),
			string(p.Strength()),
			s.MatchedRule,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportStationsCSV writes stations as CSV with headers
func ExportStationsCSV(w io.Writer, stations []domain.Station) error {
	writer := csv.NewWriter(w)

	headers := []string{
		"MAC", "Vendor", "Hostname", "SSID", "Uptime",
		"UplinkBps", "DownlinkBps", "Estimated", "UpdatedAt",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, st := range stations {
		row := []string{
			st.MAC,
			st.Vendor,
			st.Hostname,
			st.SSID,
			strconv.FormatInt(st.Uptime, 10),
			strconv.FormatFloat(st.Rate.UplinkBps, 'f', 0, 64),
			strconv.FormatFloat(st.Rate.DownlinkBps, 'f', 0, 64),
			strconv.FormatBool(st.Rate.IsEstimated),
			st.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
