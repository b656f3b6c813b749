package timer

// Tone is the audible cue preset for a phase expiry. The presets mirror the
// WebAudio oscillator settings of the browser client.
type Tone struct {
	Waveform    string
	FrequencyHz int
}

// ToneFor maps a phase to its fixed tone preset.
func ToneFor(phase Phase) Tone {
	switch phase {
	case PhaseShortBreak:
		return Tone{Waveform: "triangle", FrequencyHz: 660}
	case PhaseLongBreak:
		return Tone{Waveform: "square", FrequencyHz: 440}
	default:
		return Tone{Waveform: "sine", FrequencyHz: 880}
	}
}
