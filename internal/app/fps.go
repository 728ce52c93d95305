package app

// fpsMeter samples the instantaneous frame rate once per interval.
type fpsMeter struct {
	interval float64
	elapsed  float64
	value    float64
}

func (m *fpsMeter) tick(dt float64) {
	m.elapsed += dt
	if m.elapsed < m.interval {
		return
	}
	m.elapsed = 0
	if dt > 0 {
		m.value = 1 / dt
	}
}
