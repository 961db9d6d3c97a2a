package predict

// Rating is the nameplate of the generator used for the electrical estimate.
type Rating struct {
	VoltageV float64 `json:"voltage_v"`
	RPM      float64 `json:"rpm"`
	Poles    float64 `json:"poles"`
}

// DefaultRating is the 230 V, 1500 rpm, two-pole test-bench generator.
func DefaultRating() Rating {
	return Rating{VoltageV: 230, RPM: 1500, Poles: 2}
}

// Electrical compares the current and frequency implied by the queried and nearest power.
type Electrical struct {
	CurrentA            float64 `json:"current_a"`
	MeasuredCurrentA    float64 `json:"measured_current_a"`
	FrequencyHz         float64 `json:"frequency_hz"`
	MeasuredFrequencyHz float64 `json:"measured_frequency_hz"`
}

// Current is the line current drawn at power (kW).
func (r Rating) Current(powerKW float64) float64 {
	return powerKW * 1000 / r.VoltageV
}

// Frequency is the synchronous frequency of the machine.
func (r Rating) Frequency() float64 {
	return r.RPM * r.Poles / 120
}

func (r Rating) estimate(powerKW, measuredPowerKW float64) Electrical {
	return Electrical{
		CurrentA:            r.Current(powerKW),
		MeasuredCurrentA:    r.Current(measuredPowerKW),
		FrequencyHz:         r.Frequency(),
		MeasuredFrequencyHz: r.Frequency(),
	}
}
