// Package domain holds DTOs for pid http and service contracts
package domain

// Parsed is the wire shape of a parsed pid
// absent optional fields are omitted from the JSON body
type Parsed struct {
	Pid             string `json:"pid" example:"D20130526T095207_IFCB013_00014.png"`
	Namespace       string `json:"namespace,omitempty" example:"http://example.org/mvco/"`
	TsLabel         string `json:"ts_label,omitempty" example:"mvco"`
	BinLid          string `json:"bin_lid" example:"D20130526T095207_IFCB013"`
	Lid             string `json:"lid" example:"D20130526T095207_IFCB013_00014"`
	Timestamp       string `json:"timestamp" example:"2013-05-26T09:52:07Z"`
	Year            string `json:"year" example:"2013"`
	Month           string `json:"month,omitempty" example:"05"`
	Day             string `json:"day,omitempty" example:"26"`
	DayOfYear       string `json:"day_of_year,omitempty" example:"146"`
	Hour            string `json:"hour" example:"09"`
	Minute          string `json:"minute" example:"52"`
	Second          string `json:"second" example:"07"`
	Yearday         string `json:"yearday" example:"20130526"`
	Instrument      string `json:"instrument" example:"013"`
	SchemaVersion   int    `json:"schema_version" example:"2"`
	Target          string `json:"target,omitempty" example:"00014"`
	Product         string `json:"product" example:"raw"`
	Extension       string `json:"extension,omitempty" example:"png"`
	TimestampLayout string `json:"-"`
}
