package deposit

// Lens is one of the five assessment dimensions behind a strategic score.
type Lens struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Band        string  `json:"band"`
}

// Profile is the five-lens breakdown of a single deposit.
type Profile struct {
	Name           string  `json:"name"`
	Owner          string  `json:"owner"`
	Status         string  `json:"status"`
	StrategicScore float64 `json:"strategic_score"`
	Band           string  `json:"band"`
	Lenses         []Lens  `json:"lenses"`
}

// LensDelta is the per-lens difference between two profiles.
type LensDelta struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Base  float64 `json:"base"`
	Other float64 `json:"other"`
	Delta float64 `json:"delta"`
}

// Comparison contrasts two deposits lens by lens.
type Comparison struct {
	Base           Profile     `json:"base"`
	Other          Profile     `json:"other"`
	StrategicDelta float64     `json:"strategic_delta"`
	Lenses         []LensDelta `json:"lenses"`
}

var lensDefs = []struct {
	key, label, desc string
	get              func(Deposit) float64
}{
	{"geological", "Geological", "Resource quality, grade, mineralogy", func(d Deposit) float64 { return d.GeologicalScore }},
	{"regulatory", "Regulatory", "Permits, uranium ban, compliance", func(d Deposit) float64 { return d.RegulatoryScore }},
	{"ownership", "Ownership", "Western control, Chinese exposure", func(d Deposit) float64 { return d.OwnershipScore }},
	{"infrastructure", "Infrastructure", "Port access, power, logistics", func(d Deposit) float64 { return d.InfrastructureScore }},
	{"geopolitical", "Geopolitical", "Strategic alignment, policy support", func(d Deposit) float64 { return d.GeopoliticalScore }},
}

// ProfileOf builds the five-lens profile of d.
func ProfileOf(d Deposit) Profile {
	p := Profile{
		Name:           d.Name,
		Owner:          d.Owner,
		Status:         d.Status,
		StrategicScore: d.StrategicScore,
		Band:           BandOf(d.StrategicScore),
		Lenses:         make([]Lens, len(lensDefs)),
	}
	for i, l := range lensDefs {
		score := l.get(d)
		p.Lenses[i] = Lens{
			Key:         l.key,
			Label:       l.label,
			Description: l.desc,
			Score:       score,
			Band:        BandOf(score),
		}
	}
	return p
}

// Compare returns other minus base for the strategic score and every lens.
func Compare(base, other Deposit) Comparison {
	c := Comparison{
		Base:           ProfileOf(base),
		Other:          ProfileOf(other),
		StrategicDelta: other.StrategicScore - base.StrategicScore,
		Lenses:         make([]LensDelta, len(lensDefs)),
	}
	for i, l := range lensDefs {
		b, o := l.get(base), l.get(other)
		c.Lenses[i] = LensDelta{Key: l.key, Label: l.label, Base: b, Other: o, Delta: o - b}
	}
	return c
}
