package output

import (
	"strings"
	"testing"

	"github.com/marcus/sortable/internal/models"
)

func TestCheckbox(t *testing.T) {
	if got := Checkbox(true); got != "[x]" {
		t.Errorf("Checkbox(true) = %q", got)
	}
	if got := Checkbox(false); got != "[ ]" {
		t.Errorf("Checkbox(false) = %q", got)
	}
}

func TestItemOneLinerPlain(t *testing.T) {
	tests := []struct {
		item     models.Item
		expected string
	}{
		{models.Item{ID: "a", Title: "Milk", Order: 0}, `0 a [ ] "Milk"`},
		{models.Item{ID: "b", Title: "Eggs", Checked: true, Order: 3}, `3 b [x] "Eggs"`},
	}
	for _, tc := range tests {
		if got := ItemOneLinerPlain(tc.item); got != tc.expected {
			t.Errorf("ItemOneLinerPlain(%v) = %q, want %q", tc.item, got, tc.expected)
		}
	}
}

func TestFormatOrderOneLinePerItem(t *testing.T) {
	list := []models.Item{
		{ID: "a", Title: "Milk", Order: 0},
		{ID: "b", Title: "Eggs", Order: 1},
	}
	got := FormatOrder(list)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Milk") || !strings.Contains(lines[1], "Eggs") {
		t.Errorf("unexpected order output:\n%s", got)
	}
}

func TestIndentString(t *testing.T) {
	if got := IndentString("a\nb", 2); got != "  a\n  b" {
		t.Errorf("IndentString = %q", got)
	}
	if got := IndentString("", 4); got != "" {
		t.Errorf("IndentString empty = %q", got)
	}
}

func TestSectionHeader(t *testing.T) {
	if got := SectionHeader("bindings"); got != "\nBINDINGS:\n" {
		t.Errorf("SectionHeader = %q", got)
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	got, err := RenderMarkdownWithWidth("# Keys\n\n- `q` quit", 40, "notty")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "Keys") || !strings.Contains(got, "quit") {
		t.Errorf("rendered markdown missing content: %q", got)
	}

	empty, err := RenderMarkdownWithWidth("   ", 40, "")
	if err != nil || empty != "" {
		t.Errorf("blank input = %q, %v", empty, err)
	}
}
