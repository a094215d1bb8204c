package core

// LedgerRow is one normalized consultation/broker lead record. The date is
// deliberately the untouched source cell: the UI displays it exactly as the
// account manager typed it, while aggregation parses it separately.
type LedgerRow struct {
	RecordNumber  string  `json:"recordNumber"`
	BrokerName    string  `json:"brokerName"`
	RawDate       RawCell `json:"date"`
	ContactHandle string  `json:"contactHandle"`
	SourceChannel string  `json:"sourceChannel"`
}

// CampaignRow is one normalized ad-platform export record: one day's
// metrics for a post or ad. Dates are normalized to YYYY-MM-DD at
// ingestion time and costs converted from CNY to AUD.
type CampaignRow struct {
	Date              string  `json:"date"`
	CostAUD           float64 `json:"costAud"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Likes             int     `json:"likes"`
	Comments          int     `json:"comments"`
	Favorites         int     `json:"favorites"`
	Followers         int     `json:"followers"`
	Shares            int     `json:"shares"`
	Interactions      int     `json:"interactions"`
	Conversions       int     `json:"conversions"`
	ConversionCostAUD float64 `json:"conversionCostAud"`
}

// NoteRow is one published note. Rows whose status marks them invalid or
// whose publish-time field is a category label never become NoteRows.
type NoteRow struct {
	PublishedAt string `json:"publishedAt"`
	NoteType    string `json:"noteType"`
	Title       string `json:"title"`
	Link        string `json:"link"`
}
