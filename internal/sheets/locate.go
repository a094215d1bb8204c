package sheets

import (
	"strings"

	"leadlens/internal/core"
)

// matchRules carries the ordered matching configuration for one dataset.
// Exact names (including historical variants the account managers have used
// over time) win over case-insensitive equality, which wins over keyword
// containment. Keyword groups require every keyword in the group to appear;
// a name containing any excluded keyword never keyword-matches, which keeps
// broad fallbacks like "笔记" from claiming the other account's sheets.
type matchRules struct {
	exact    []string
	keywords [][]string
	exclude  []string
}

var rulesByKind = map[core.DatasetKind]matchRules{
	core.DatasetConsultation: {
		exact:    []string{"客户信息", "客户信息表", "客户 信息", "Client Info"},
		keywords: [][]string{{"客户"}, {"client"}, {"info"}},
	},
	core.DatasetCampaign: {
		exact:    []string{"Lifecar投放数据", "Lifecar 投放数据", "Lifecar投放"},
		keywords: [][]string{{"lifecar", "投放"}},
	},
	core.DatasetNotesA: {
		exact:    []string{"Lifecar笔记数据", "Lifecar 笔记数据", "笔记数据"},
		keywords: [][]string{{"lifecar", "笔记"}, {"笔记"}},
		exclude:  []string{"ozlend"},
	},
	core.DatasetCampaignB: {
		exact:    []string{"Ozlend投放数据", "Ozlend 投放数据"},
		keywords: [][]string{{"ozlend", "投放"}},
	},
	core.DatasetNotesB: {
		exact:    []string{"Ozlend笔记数据", "Ozlend 笔记数据"},
		keywords: [][]string{{"ozlend", "笔记"}},
	},
}

// Locate finds the best-matching sheet name for a dataset. A miss is not an
// error: it means the dataset is absent from this workbook and the pipeline
// moves on to the next one.
func Locate(names []string, kind core.DatasetKind) (string, bool) {
	rules, ok := rulesByKind[kind]
	if !ok {
		return "", false
	}
	for _, want := range rules.exact {
		for _, name := range names {
			if name == want {
				return name, true
			}
		}
	}
	for _, want := range rules.exact {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return name, true
			}
		}
	}
	for _, group := range rules.keywords {
		for _, name := range names {
			if containsAnyFold(name, rules.exclude) {
				continue
			}
			if containsAllFold(name, group) {
				return name, true
			}
		}
	}
	return "", false
}

func containsAnyFold(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func containsAllFold(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
