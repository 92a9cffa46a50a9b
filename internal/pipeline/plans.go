package pipeline

import "github.com/tphakala/go-audio-enhancer/internal/biquad"

// VocalBands shapes the vocal range.
func VocalBands() []biquad.Band {
	return []biquad.Band{
		{Low: 200, High: 4000, Order: 6, Weight: 0.3},   // body
		{Low: 2000, High: 6000, Order: 4, Weight: 0.25}, // presence
		{Low: 400, High: 1500, Order: 3, Weight: 0.2},
		{Low: 1000, High: 3000, Order: 4, Weight: 0.15},
	}
}

// BassBands lifts sub-bass through low-mids.
func BassBands() []biquad.Band {
	return []biquad.Band{
		{Low: 20, High: 60, Order: 8, Weight: 0.4},
		{Low: 60, High: 200, Order: 6, Weight: 0.35},
		{Low: 200, High: 500, Order: 4, Weight: 0.25},
		{Low: 80, High: 120, Order: 4, Weight: 0.3}, // punch
	}
}

// TrebleBands brightens the upper range.
func TrebleBands() []biquad.Band {
	return []biquad.Band{
		{Low: 3000, High: 6000, Order: 6, Weight: 0.3},
		{Low: 6000, High: 12000, Order: 4, Weight: 0.25},
		{Low: 12000, High: 20000, Order: 3, Weight: 0.15}, // air
		{Low: 8000, High: 16000, Order: 4, Weight: 0.2},
	}
}

// WarmthBands thickens the low-mids.
func WarmthBands() []biquad.Band {
	return []biquad.Band{
		{Low: 300, High: 1200, Order: 6, Weight: 0.3},
		{Low: 800, High: 2500, Order: 4, Weight: 0.2},
		{Low: 150, High: 600, Order: 4, Weight: 0.25},
		{Low: 400, High: 1000, Order: 3, Weight: 0.15},
	}
}

// BandPlan returns the band plan of a band-shaping stage, or nil.
func BandPlan(id StageID) []biquad.Band {
	switch id {
	case VocalEnhance:
		return VocalBands()
	case BassBoost:
		return BassBands()
	case TrebleEnhance:
		return TrebleBands()
	case WarmthFilter:
		return WarmthBands()
	default:
		return nil
	}
}
