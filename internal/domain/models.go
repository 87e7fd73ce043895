package domain

// FlightRecord is one digitized logbook entry. JSON names are the wire
// format shared with the web client and the generative model prompt.
type FlightRecord struct {
	Date             string  `json:"date"`
	TailNumber       string  `json:"tailNumber"`
	SrcIcao          string  `json:"srcIcao"`
	DestIcao         string  `json:"destIcao"`
	TotalFlightTime  float64 `json:"totalFlightTime"`
	PICTime          float64 `json:"picTime"`
	DualReceivedTime float64 `json:"dualReceivedTime"`
	InstrumentTime   float64 `json:"instrumentTime"`
	CrossCountry     bool    `json:"crossCountry"`
	Night            bool    `json:"night"`
	Solo             bool    `json:"solo"`
	DayLandings      int     `json:"dayLandings"`
	NightLandings    int     `json:"nightLandings"`
	Remarks          string  `json:"remarks"`
}

// ExtractionResult is the outcome of processing one logbook page image.
type ExtractionResult struct {
	Message string         `json:"message"`
	Records []FlightRecord `json:"records"`
}

// NewExtractionResult builds a result whose Records is never nil, so it
// always serializes as a JSON array.
func NewExtractionResult(message string, records []FlightRecord) *ExtractionResult {
	if records == nil {
		records = []FlightRecord{}
	}
	return &ExtractionResult{Message: message, Records: records}
}
