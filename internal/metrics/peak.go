package metrics

type PeakFire struct {
	name string
	peak int
}

func NewPeakFire() *PeakFire {
	return &PeakFire{name: "peak_fire"}
}

func (p *PeakFire) Name() string {
	return p.name
}

func (p *PeakFire) Observe(c Census) {
	if c.Burning > p.peak {
		p.peak = c.Burning
	}
}

func (p *PeakFire) Value() float64 {
	return float64(p.peak)
}

func (p *PeakFire) Reset() {
	p.peak = 0
}
