package metrics

// Coverage is the mean fraction of the world covered by mature trees.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{
		name: "tree_coverage",
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(census Census) {
	if total := census.Total(); total > 0 {
		c.sum += float64(census.Trees) / float64(total)
	}
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

// Calm is the fraction of generations with no fire anywhere.
type Calm struct {
	name    string
	fires   int
	samples int
}

func NewCalm() *Calm {
	return &Calm{
		name: "calm",
	}
}

func (c *Calm) Name() string {
	return c.name
}

func (c *Calm) Observe(census Census) {
	c.samples++
	if census.Burning > 0 {
		c.fires++
	}
}

func (c *Calm) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.fires)/float64(c.samples)
}

func (c *Calm) Reset() {
	c.fires = 0
	c.samples = 0
}
