package domain

import "fmt"

// SourceSpec describes one raster time series: where to query it and how
// to rescale its raw cell values into °C. The two supported sources differ
// only in this configuration, never in code path.
type SourceSpec struct {
	Name    string  // CLI identifier, e.g. "sst"
	Dataset string  // griddap dataset ID
	Band    string  // variable name within the dataset
	Scale   float64 // multiplier applied to raw cell values
	Offset  float64 // additive offset applied after scaling
	Suffix  string  // output filename suffix, e.g. "SST"
}

// Apply converts a raw cell value into °C.
func (s SourceSpec) Apply(raw float64) float64 {
	return raw*s.Scale + s.Offset
}

var (
	// OISST is NOAA OISST v2.1 daily SST. Cells store hundredths of °C.
	OISST = SourceSpec{
		Name:    "sst",
		Dataset: "ncdcOisst21Agg",
		Band:    "sst",
		Scale:   0.01,
		Offset:  0,
		Suffix:  "SST",
	}

	// HYCOM is the HYCOM surface water temperature band. Cells store
	// thousandths of °C shifted by a -20° baseline.
	HYCOM = SourceSpec{
		Name:    "hycom",
		Dataset: "HYCOM_sfc_temp",
		Band:    "water_temp_0",
		Scale:   0.001,
		Offset:  20,
		Suffix:  "HYCOM",
	}
)

// SourceByName resolves a CLI source identifier to its spec.
func SourceByName(name string) (SourceSpec, error) {
	switch name {
	case OISST.Name:
		return OISST, nil
	case HYCOM.Name:
		return HYCOM, nil
	}
	return SourceSpec{}, fmt.Errorf("unknown raster source %q", name)
}
