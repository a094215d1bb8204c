package sheets

import (
	"testing"
)

func TestParseCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBF序号,经纪人,日期\n" +
		"1, Alice ,19/09/2024\n" +
		"\n" +
		"2,Bob\n" + // ragged row, missing the date column
		"3,Carol,20/09/2024,extra\n")

	table, err := ParseCSV(data, "leads")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(table.Sheets) != 1 || table.Sheets[0].Name != "leads" {
		t.Fatalf("unexpected sheets: %v", table.Names())
	}
	rows := table.Sheets[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if got := rows[0]["经纪人"].String(); got != "Alice" {
		t.Errorf("field not trimmed: %q", got)
	}
	if !rows[1]["日期"].IsEmpty() {
		t.Error("ragged row should leave the missing column empty")
	}
	if got := rows[2]["日期"].String(); got != "20/09/2024" {
		t.Errorf("got %q", got)
	}
}

func TestParseCSVBlankInputFails(t *testing.T) {
	if _, err := ParseCSV([]byte("\n\n"), "empty"); err == nil {
		t.Error("expected an error for csv without a header row")
	}
}

func TestParseCSVRejectsBinary(t *testing.T) {
	for _, data := range [][]byte{
		{0x00, 0x01, 0x02},
		{0xde, 0xad, 0xbe, 0xef},
	} {
		if _, err := ParseCSV(data, "junk"); err == nil {
			t.Errorf("expected an error for binary input %x", data)
		}
	}
}

func TestParseCSVCellsStayStrings(t *testing.T) {
	table, err := ParseCSV([]byte("日期\n45558\n"), "x")
	if err != nil {
		t.Fatal(err)
	}
	cell := table.Sheets[0].Rows[0]["日期"]
	if cell.String() != "45558" {
		t.Errorf("got %q", cell.String())
	}
}
