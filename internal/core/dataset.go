package core

// DatasetKind identifies one of the logical datasets an upload may carry.
// Account A ("Lifecar") exports the consultation ledger, a campaign ledger
// and a notes export; account B ("Ozlend") exports campaign and notes
// ledgers in its regional format.
type DatasetKind int

const (
	DatasetConsultation DatasetKind = iota
	DatasetCampaign
	DatasetNotesA
	DatasetCampaignB
	DatasetNotesB
)

// Key returns the stable JSON key used in the processed map and payload.
func (k DatasetKind) Key() string {
	switch k {
	case DatasetConsultation:
		return "consultation"
	case DatasetCampaign:
		return "campaign"
	case DatasetNotesA:
		return "notesA"
	case DatasetCampaignB:
		return "campaignB"
	case DatasetNotesB:
		return "notesB"
	default:
		return "unknown"
	}
}

// AllDatasets lists every kind in payload order.
func AllDatasets() []DatasetKind {
	return []DatasetKind{
		DatasetConsultation,
		DatasetCampaign,
		DatasetNotesA,
		DatasetCampaignB,
		DatasetNotesB,
	}
}

// DateConvention returns the day-order convention the dataset's source
// system writes slash dates in. The two ad platforms genuinely disagree, so
// the convention is carried per dataset rather than inferred from shape.
func (k DatasetKind) DateConvention() DateFormat {
	if k == DatasetCampaign {
		return MDY
	}
	return DMY
}
