package config

import "sort"

// Presets are heating scenarios at the reference operating point
// (1250 A coil current, 55 MHz antenna frequency).
var Presets = map[string]*Config{
	"hydrogen-fundamental": {
		Device:   DeviceConfig{CoilCurrent: 1250, RMin: 0.5, RMax: 6.0},
		Wave:     WaveConfig{Frequency: 55e6},
		Ion:      IonConfig{Species: "H"},
		Harmonic: 1,
		Scan:     ScanConfig{Points: 200, MaxHarmonic: 3},
	},
	"hydrogen-second": {
		Device:   DeviceConfig{CoilCurrent: 1250, RMin: 0.5, RMax: 6.0},
		Wave:     WaveConfig{Frequency: 55e6},
		Ion:      IonConfig{Species: "H"},
		Harmonic: 2,
		Scan:     ScanConfig{Points: 200, MaxHarmonic: 3},
	},
	"deuterium-fundamental": {
		Device:   DeviceConfig{CoilCurrent: 1250, RMin: 0.5, RMax: 6.0},
		Wave:     WaveConfig{Frequency: 55e6},
		Ion:      IonConfig{Species: "D"},
		Harmonic: 1,
		Scan:     ScanConfig{Points: 200, MaxHarmonic: 3},
	},
	"deuterium-second": {
		Device:   DeviceConfig{CoilCurrent: 1250, RMin: 0.5, RMax: 6.0},
		Wave:     WaveConfig{Frequency: 55e6},
		Ion:      IonConfig{Species: "D"},
		Harmonic: 2,
		Scan:     ScanConfig{Points: 200, MaxHarmonic: 3},
	},
	"helium3-minority": {
		Device:   DeviceConfig{CoilCurrent: 1250, RMin: 0.5, RMax: 6.0},
		Wave:     WaveConfig{Frequency: 55e6},
		Ion:      IonConfig{Species: "He3"},
		Harmonic: 1,
		Scan:     ScanConfig{Points: 200, MaxHarmonic: 3},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
