package game

// DetailController trades visual richness for frame rate. It keeps a rolling
// window of instantaneous FPS samples and switches between two detail levels
// on the window average. The thresholds form a hysteresis band: low detail
// engages below the enter threshold and releases only above the leave
// threshold, so a frame rate hovering at the boundary cannot flicker the
// mode every sample.
type DetailController struct {
	samples []float64
	low     bool
	bal     *Balance
}

func NewDetailController(bal *Balance) *DetailController {
	return &DetailController{
		samples: make([]float64, 0, FPSSampleCount),
		bal:     bal,
	}
}

// AddSample records one frame's FPS and re-evaluates the mode.
func (dc *DetailController) AddSample(fps float64) {
	if len(dc.samples) < FPSSampleCount {
		dc.samples = append(dc.samples, fps)
	} else {
		copy(dc.samples, dc.samples[1:])
		dc.samples[len(dc.samples)-1] = fps
	}

	avg := dc.Average()
	if dc.low {
		if avg > dc.bal.LowDetailLeaveFPS {
			dc.low = false
		}
	} else if avg < dc.bal.LowDetailEnterFPS {
		dc.low = true
	}
}

// Average is the rolling mean FPS; full rate when no samples yet.
func (dc *DetailController) Average() float64 {
	if len(dc.samples) == 0 {
		return FrameRate
	}
	sum := 0.0
	for _, s := range dc.samples {
		sum += s
	}
	return sum / float64(len(dc.samples))
}

func (dc *DetailController) Low() bool {
	return dc.low
}

// TrafficCap is the most cars the scene keeps at the current detail level.
func (dc *DetailController) TrafficCap() int {
	if dc.low {
		return dc.bal.TrafficCapLow
	}
	return dc.bal.TrafficCapHigh
}

// ParticleBudget is the particle pool size at the current detail level.
func (dc *DetailController) ParticleBudget() int {
	if dc.low {
		return MaxParticlesLow
	}
	return MaxParticles
}
