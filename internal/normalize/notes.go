package normalize

import (
	"strings"
	"time"

	"leadlens/internal/core"
)

// invalidNoteStatuses are the platform's sentinels for notes that must not
// appear on the dashboard: taken down for a violation, or visible only to
// the author.
var invalidNoteStatuses = map[string]bool{
	"已违规":   true,
	"仅自己可见": true,
}

// noteCategoryPrefix marks publish-time cells that are really section
// labels ("笔记类型" etc.) left behind by the export's merged layout rows.
const noteCategoryPrefix = "笔记"

// Notes normalizes a notes export. Filtering happens before any NoteRow is
// built: a row with an invalid status or a category label in its
// publish-time column is skipped entirely.
func Notes(rows []core.Row) []core.NoteRow {
	out := make([]core.NoteRow, 0, len(rows))
	for _, row := range rows {
		if invalidNoteStatuses[pickString(row, "状态", "笔记状态", "Status")] {
			continue
		}
		published := pickCell(row, "发布时间", "首次发布时间", "Published")
		if published.Kind == core.CellString && strings.HasPrefix(strings.TrimSpace(published.Text), noteCategoryPrefix) {
			continue
		}
		r := core.NoteRow{
			PublishedAt: normalizePublished(published),
			NoteType:    pickString(row, "笔记类型", "类型", "Type"),
			Title:       pickString(row, "笔记标题", "标题", "Title"),
			Link:        pickString(row, "笔记链接", "链接", "Link"),
		}
		if r.PublishedAt == "" && r.Title == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// publishedLayouts cover the timestamp shapes seen across the regional
// note exports.
var publishedLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// normalizePublished renders a publish-time cell as "YYYY-MM-DD HH:MM:SS",
// or just the date when the source carries no time-of-day. Unparseable
// values pass through as raw text rather than being discarded; the note
// itself is still worth listing.
func normalizePublished(cell core.RawCell) string {
	switch cell.Kind {
	case core.CellNumber:
		t := core.FromExcelSerial(cell.Number)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	case core.CellString:
		s := strings.TrimSpace(cell.Text)
		for _, layout := range publishedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if strings.Contains(layout, "15:04") {
					return t.Format("2006-01-02 15:04:05")
				}
				return t.Format("2006-01-02")
			}
		}
		return s
	default:
		return ""
	}
}
