package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/valuable-brands/backoffice/internal/finance"
)

func TestWriteCashFlowCSVLeavesZeroCellsBlank(t *testing.T) {
	var buf bytes.Buffer
	entries := []finance.CashFlowEntry{
		{ID: "CF-001", Date: "2025-07-01", Description: "Sponsorship", Category: "Sponsorship", Inflow: 2500000, Outflow: 0, Balance: 6800000},
		{ID: "CF-002", Date: "2025-07-03", Description: "Venue deposit", Category: "Venue", Inflow: 0, Outflow: 850000, Balance: 5950000},
	}
	if err := WriteCashFlowCSV(&buf, entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "2500000,,") {
		t.Fatalf("inflow row should leave outflow blank: %q", lines[1])
	}
	if !strings.Contains(lines[2], ",,850000") {
		t.Fatalf("outflow row should leave inflow blank: %q", lines[2])
	}
}

func TestWriteKPICSV(t *testing.T) {
	var buf bytes.Buffer
	kpis := finance.NewStaticDataset().KPIs()
	if err := WriteKPICSV(&buf, kpis); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Profit Margin,16.2,") {
		t.Fatalf("missing KPI row: %s", out)
	}
	if got := strings.Count(strings.TrimSpace(out), "\n"); got != len(kpis) {
		t.Fatalf("expected %d data rows got %d", len(kpis), got)
	}
}
