package normalize

import (
	"leadlens/internal/core"
)

// Ledger normalizes consultation/broker sheet rows. The date cell is
// carried through untouched: the dashboard shows it exactly as the account
// manager entered it, and only aggregation parses it (with the DMY hint).
func Ledger(rows []core.Row) []core.LedgerRow {
	out := make([]core.LedgerRow, 0, len(rows))
	for _, row := range rows {
		r := core.LedgerRow{
			RecordNumber:  pickString(row, "序号", "编号", "No.", "No"),
			BrokerName:    pickString(row, "经纪人", "顾问", "Broker"),
			RawDate:       pickCell(row, "日期", "咨询日期", "Date"),
			ContactHandle: pickString(row, "微信号", "联系方式", "WeChat", "Contact"),
			SourceChannel: pickString(row, "渠道", "来源", "Channel", "Source"),
		}
		if r.RecordNumber == "" && r.BrokerName == "" && r.RawDate.IsEmpty() {
			continue
		}
		out = append(out, r)
	}
	return out
}
