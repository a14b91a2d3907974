// Package domain holds DTOs for bin http and service contracts
package domain

// ListInput narrows and pages the bin listing
// all filters are optional; zero values mean no filter
type ListInput struct {
	// Lid filters to one exact bin (useful as an existence probe)
	Lid string `query:"lid" validate:"omitempty,pid"`
	// Instrument filters on the instrument number, zero padding ignored
	Instrument int `query:"instrument" validate:"omitempty,min=1,max=999"`
	// Day filters on the yearday substring, e.g. 20160714
	Day      string `query:"day" validate:"omitempty,numeric"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// ListItem is one row of the bin listing
type ListItem struct {
	Lid           string `json:"lid" example:"D20160714T023910_IFCB101"`
	Timestamp     string `json:"timestamp" example:"2016-07-14T02:39:10Z"`
	Instrument    string `json:"instrument" example:"101"`
	SchemaVersion int    `json:"schema_version" example:"2"`
	SizeBytes     int64  `json:"size_bytes" example:"1048576"`
}

// Summary is the full description of one bin
type Summary struct {
	Lid           string `json:"lid"`
	Timestamp     string `json:"timestamp"`
	Instrument    string `json:"instrument"`
	SchemaVersion int    `json:"schema_version"`

	Targets  int `json:"targets"`
	Images   int `json:"images"`
	Triggers int `json:"triggers"`

	RunTime     float64 `json:"run_time"`
	InhibitTime float64 `json:"inhibit_time"`
	LookTime    float64 `json:"look_time"`
	MlAnalyzed  float64 `json:"ml_analyzed"`
	TriggerRate float64 `json:"trigger_rate"`

	// instrument environment, absent when the header lacks them
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`

	Header map[string]string `json:"header"`
}

// Target is one record of a bin keyed by schema column name
type Target struct {
	Lid    string `json:"lid"`
	Number int    `json:"target"`
	// HasImage reports whether the record carries image geometry
	HasImage bool               `json:"has_image"`
	Values   map[string]float64 `json:"values"`
}
