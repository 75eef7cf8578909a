package config

import "sort"

// Presets are the demonstration states cycled by the demo command.
var Presets = map[string]*Config{
	"low": {
		EMF: 5.0, Resistance: 500.0, Capacitance: 10.0,
		SwitchClosed: false, Duration: DefaultDuration,
	},
	"medium": {
		EMF: 10.0, Resistance: 1000.0, Capacitance: 100.0,
		SwitchClosed: true, Duration: DefaultDuration,
	},
	"high": {
		EMF: 20.0, Resistance: 5000.0, Capacitance: 1000.0,
		SwitchClosed: true, Duration: DefaultDuration,
	},
	"max": {
		EMF: 50.0, Resistance: 10000.0, Capacitance: 5000.0,
		SwitchClosed: false, Duration: DefaultDuration,
	},
}

// PresetOrder is the demo cycle order, mild to extreme.
var PresetOrder = []string{"low", "medium", "high", "max"}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
