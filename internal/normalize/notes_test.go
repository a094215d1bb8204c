package normalize

import (
	"testing"

	"leadlens/internal/core"
)

func TestNotesFiltersInvalidStatuses(t *testing.T) {
	for _, status := range []string{"已违规", "仅自己可见"} {
		rows := []core.Row{
			row("状态", status, "发布时间", "2024-09-19 08:30:00", "笔记标题", "anything"),
			row("状态", "已发布", "发布时间", "2024-09-19 08:30:00", "笔记标题", "kept"),
		}
		got := Notes(rows)
		if len(got) != 1 || got[0].Title != "kept" {
			t.Errorf("status %q: got %+v", status, got)
		}
	}
}

func TestNotesFiltersCategoryLabelRows(t *testing.T) {
	rows := []core.Row{
		row("发布时间", "笔记类型", "笔记标题", "section header artifact"),
		row("发布时间", "2024-09-19", "笔记标题", "real note"),
	}
	got := Notes(rows)
	if len(got) != 1 || got[0].Title != "real note" {
		t.Errorf("got %+v", got)
	}
}

func TestNotesPublishedAtNormalization(t *testing.T) {
	tests := []struct {
		name string
		cell core.RawCell
		want string
	}{
		{"datetime string", core.StringCell("2024/09/19 08:30"), "2024-09-19 08:30:00"},
		{"date string", core.StringCell("2024/09/19"), "2024-09-19"},
		{"whole-day serial", core.NumberCell(45558), "2024-09-19"},
		{"serial with time", core.NumberCell(45558.5), "2024-09-19 12:00:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := []core.Row{{"发布时间": tc.cell, "笔记标题": core.StringCell("t")}}
			got := Notes(rows)
			if len(got) != 1 {
				t.Fatal("row dropped")
			}
			if got[0].PublishedAt != tc.want {
				t.Errorf("got %q want %q", got[0].PublishedAt, tc.want)
			}
		})
	}
}

func TestNotesFieldMapping(t *testing.T) {
	rows := []core.Row{row(
		"发布时间", "2024-09-19",
		"笔记类型", "图文",
		"笔记标题", "看房日记",
		"笔记链接", "https://example.com/n/1",
		"状态", "已发布",
	)}
	got := Notes(rows)
	if len(got) != 1 {
		t.Fatal("row dropped")
	}
	n := got[0]
	if n.NoteType != "图文" || n.Title != "看房日记" || n.Link != "https://example.com/n/1" {
		t.Errorf("got %+v", n)
	}
}
