package normalize

import (
	"leadlens/internal/core"
)

// Campaign normalizes ad-platform export rows. Dates are resolved against
// the convention the caller supplies, since the two accounts export
// different day orders, and emitted as YYYY-MM-DD. Rows whose date cannot
// be resolved are dropped: a campaign row without a date has no meaning to
// any consumer.
func Campaign(rows []core.Row, format core.DateFormat) []core.CampaignRow {
	out := make([]core.CampaignRow, 0, len(rows))
	for _, row := range rows {
		date, ok := core.ResolveDate(pickCell(row, "日期", "时间", "Date"), format)
		if !ok {
			continue
		}
		r := core.CampaignRow{
			Date:              core.DayLabel(date),
			CostAUD:           pickFloat(row, "消费", "花费", "Cost", "Spend") / cnyPerAUD,
			Impressions:       pickInt(row, "展现量", "曝光量", "Impressions"),
			Clicks:            pickInt(row, "点击量", "Clicks"),
			Likes:             pickInt(row, "点赞", "Likes"),
			Comments:          pickInt(row, "评论", "Comments"),
			Favorites:         pickInt(row, "收藏", "Favorites"),
			Followers:         pickInt(row, "关注", "Followers"),
			Shares:            pickInt(row, "分享", "Shares"),
			Interactions:      pickInt(row, "互动量", "Interactions"),
			Conversions:       pickInt(row, "咨询量", "留资量", "Conversions"),
			ConversionCostAUD: pickFloat(row, "咨询成本", "留资成本", "Conversion Cost") / cnyPerAUD,
		}
		out = append(out, r)
	}
	return out
}
