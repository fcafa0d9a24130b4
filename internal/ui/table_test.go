package ui

import (
	"strings"
	"testing"
)

func TestTruncateTableCellCountsRunes(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellAddsEllipsis(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth+10)

	got := TruncateTableCell(value)

	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if width := displayWidth(got); width != tableCellMaxWidth {
		t.Fatalf("expected width %d, got %d", tableCellMaxWidth, width)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	value := "Hello\nWorld\r\nAgain\tTab"

	got := TruncateTableCell(value)

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL\nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "TITLE", "TASKS"}, 2)
	builder.AddRow([]string{"1", "Trip", "0/1"})
	builder.AddRow([]string{"12", "\x1b[2mGroceries\x1b[0m", "3/4"})

	got := builder.String()

	expected := "ID  TITLE      TASKS\n" +
		"1   Trip       0/1\n" +
		"12  \x1b[2mGroceries\x1b[0m  3/4\n"
	if got != expected {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, expected)
	}
	if builder.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", builder.Len())
	}
}
