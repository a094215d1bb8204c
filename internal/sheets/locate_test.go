package sheets

import (
	"testing"

	"leadlens/internal/core"
)

func TestLocateExactBeatsSubstring(t *testing.T) {
	// Both names satisfy the keyword rule, but the exact canonical name
	// must win regardless of order.
	names := []string{"客户信息备份", "客户信息"}
	got, ok := Locate(names, core.DatasetConsultation)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "客户信息" {
		t.Errorf("got %q, want exact match 客户信息", got)
	}
}

func TestLocateCaseInsensitiveExact(t *testing.T) {
	got, ok := Locate([]string{"Summary", "CLIENT INFO"}, core.DatasetConsultation)
	if !ok || got != "CLIENT INFO" {
		t.Errorf("got %q ok=%v", got, ok)
	}
}

func TestLocateKeywordGroups(t *testing.T) {
	tests := []struct {
		kind  core.DatasetKind
		names []string
		want  string
	}{
		{core.DatasetCampaign, []string{"杂项", "LifeCar 9月投放"}, "LifeCar 9月投放"},
		{core.DatasetCampaignB, []string{"Lifecar投放数据", "Ozlend 9月投放"}, "Ozlend 9月投放"},
		{core.DatasetNotesA, []string{"Lifecar笔记明细"}, "Lifecar笔记明细"},
		{core.DatasetNotesB, []string{"Ozlend笔记明细"}, "Ozlend笔记明细"},
	}
	for _, tc := range tests {
		got, ok := Locate(tc.names, tc.kind)
		if !ok || got != tc.want {
			t.Errorf("kind %s: got %q ok=%v, want %q", tc.kind.Key(), got, ok, tc.want)
		}
	}
}

func TestLocateNotesFallbackExcludesOtherAccount(t *testing.T) {
	// The bare 笔记 fallback covers account A's generically named sheet,
	// but must never claim account B's notes export.
	if got, ok := Locate([]string{"Ozlend笔记数据"}, core.DatasetNotesA); ok {
		t.Errorf("notesA matched %q", got)
	}
	got, ok := Locate([]string{"九月笔记明细"}, core.DatasetNotesA)
	if !ok || got != "九月笔记明细" {
		t.Errorf("got %q ok=%v", got, ok)
	}
}

func TestLocateRequiresAllKeywordsInGroup(t *testing.T) {
	// "投放" alone must not match the campaign dataset without the brand.
	if got, ok := Locate([]string{"某品牌投放数据"}, core.DatasetCampaign); ok {
		t.Errorf("unexpected match %q", got)
	}
}

func TestLocateMissIsNotFound(t *testing.T) {
	if _, ok := Locate([]string{"Sheet1", "Sheet2"}, core.DatasetConsultation); ok {
		t.Error("expected no match")
	}
}
