package diagnosis

import "math"

// Element is one axis of the five-element constitutional model.
type Element string

const (
	ElementWood  Element = "wood"
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementMetal Element = "metal"
	ElementWater Element = "water"
)

// ElementOrder returns the five elements in the generating-cycle order used
// for tie-breaking and adjacency checks (wood→fire→earth→metal→water).
func ElementOrder() []Element {
	return []Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}
}

// NeutralValue is the midpoint every profile value starts from.
const NeutralValue = 50.0

// ElementProfile is the five-value element balance derived from the
// observation streams. Every value is clamped to [0,100] after all
// per-modality adjustments are summed.
type ElementProfile struct {
	Wood  float64 `json:"wood"`
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
	Metal float64 `json:"metal"`
	Water float64 `json:"water"`

	DominantElement  Element  `json:"dominant_element"`
	DeficientElement Element  `json:"deficient_element"`
	Imbalances       []string `json:"imbalances,omitempty"`
}

// NewElementProfile returns the all-neutral baseline profile.
func NewElementProfile() ElementProfile {
	return ElementProfile{
		Wood:  NeutralValue,
		Fire:  NeutralValue,
		Earth: NeutralValue,
		Metal: NeutralValue,
		Water: NeutralValue,
	}
}

// Value returns the profile value for an element.
func (p *ElementProfile) Value(e Element) float64 {
	switch e {
	case ElementWood:
		return p.Wood
	case ElementFire:
		return p.Fire
	case ElementEarth:
		return p.Earth
	case ElementMetal:
		return p.Metal
	case ElementWater:
		return p.Water
	}
	return 0
}

// SetValue sets the profile value for an element.
func (p *ElementProfile) SetValue(e Element, v float64) {
	switch e {
	case ElementWood:
		p.Wood = v
	case ElementFire:
		p.Fire = v
	case ElementEarth:
		p.Earth = v
	case ElementMetal:
		p.Metal = v
	case ElementWater:
		p.Water = v
	}
}

// AddImbalance appends a label unless it is already recorded.
func (p *ElementProfile) AddImbalance(label string) {
	for _, existing := range p.Imbalances {
		if existing == label {
			return
		}
	}
	p.Imbalances = append(p.Imbalances, label)
}

// YinYangBalance is the seven-tier ordered balance category.
type YinYangBalance string

const (
	BalanceSevereYinExcess    YinYangBalance = "severe-yin-excess"
	BalanceModerateYinExcess  YinYangBalance = "moderate-yin-excess"
	BalanceSlightYinExcess    YinYangBalance = "slight-yin-excess"
	BalanceBalanced           YinYangBalance = "balanced"
	BalanceSlightYangExcess   YinYangBalance = "slight-yang-excess"
	BalanceModerateYangExcess YinYangBalance = "moderate-yang-excess"
	BalanceSevereYangExcess   YinYangBalance = "severe-yang-excess"
)

// Balance thresholds on |yang − yin|.
const (
	severeBalanceThreshold   = 20.0
	moderateBalanceThreshold = 10.0
	slightBalanceThreshold   = 5.0
)

// YinYangProfile is the two-axis thermal/energetic balance model.
type YinYangProfile struct {
	Yin     float64        `json:"yin"`
	Yang    float64        `json:"yang"`
	Balance YinYangBalance `json:"balance"`
}

// NewYinYangProfile returns the neutral yin=yang=50 baseline.
func NewYinYangProfile() YinYangProfile {
	return YinYangProfile{Yin: NeutralValue, Yang: NeutralValue, Balance: BalanceBalanced}
}

// Categorize derives the balance tier from the signed difference yang − yin.
func (p *YinYangProfile) Categorize() {
	diff := p.Yang - p.Yin
	abs := math.Abs(diff)
	switch {
	case abs > severeBalanceThreshold && diff > 0:
		p.Balance = BalanceSevereYangExcess
	case abs > severeBalanceThreshold:
		p.Balance = BalanceSevereYinExcess
	case abs > moderateBalanceThreshold && diff > 0:
		p.Balance = BalanceModerateYangExcess
	case abs > moderateBalanceThreshold:
		p.Balance = BalanceModerateYinExcess
	case abs > slightBalanceThreshold && diff > 0:
		p.Balance = BalanceSlightYangExcess
	case abs > slightBalanceThreshold:
		p.Balance = BalanceSlightYinExcess
	default:
		p.Balance = BalanceBalanced
	}
}

// Severity returns the tier depth of the balance category: 0 for balanced,
// 1 slight, 2 moderate, 3 severe.
func (b YinYangBalance) Severity() int {
	switch b {
	case BalanceSlightYinExcess, BalanceSlightYangExcess:
		return 1
	case BalanceModerateYinExcess, BalanceModerateYangExcess:
		return 2
	case BalanceSevereYinExcess, BalanceSevereYangExcess:
		return 3
	}
	return 0
}

// YinSided reports whether the category leans toward yin excess (yang deficiency).
func (b YinYangBalance) YinSided() bool {
	switch b {
	case BalanceSlightYinExcess, BalanceModerateYinExcess, BalanceSevereYinExcess:
		return true
	}
	return false
}

// Organ is one of the seven tracked organ systems.
type Organ string

const (
	OrganHeart       Organ = "heart"
	OrganLiver       Organ = "liver"
	OrganSpleen      Organ = "spleen"
	OrganLung        Organ = "lung"
	OrganKidney      Organ = "kidney"
	OrganStomach     Organ = "stomach"
	OrganGallbladder Organ = "gallbladder"
)

// OrganOrder returns the seven organs in canonical iteration order.
func OrganOrder() []Organ {
	return []Organ{OrganHeart, OrganLiver, OrganSpleen, OrganLung, OrganKidney, OrganStomach, OrganGallbladder}
}

// OrganBaseline is the starting value for every organ before element
// correspondences and modality overrides apply.
const OrganBaseline = 20.0

// OrganProfile is the seven-organ balance derived from the element profile
// plus looking-modality overrides. Values are clamped to [0,100] at the end.
type OrganProfile struct {
	Heart       float64 `json:"heart"`
	Liver       float64 `json:"liver"`
	Spleen      float64 `json:"spleen"`
	Lung        float64 `json:"lung"`
	Kidney      float64 `json:"kidney"`
	Stomach     float64 `json:"stomach"`
	Gallbladder float64 `json:"gallbladder"`

	Anomalies []string `json:"anomalies,omitempty"`
}

// NewOrganProfile returns the all-baseline profile.
func NewOrganProfile() OrganProfile {
	return OrganProfile{
		Heart:       OrganBaseline,
		Liver:       OrganBaseline,
		Spleen:      OrganBaseline,
		Lung:        OrganBaseline,
		Kidney:      OrganBaseline,
		Stomach:     OrganBaseline,
		Gallbladder: OrganBaseline,
	}
}

// Value returns the profile value for an organ.
func (p *OrganProfile) Value(o Organ) float64 {
	switch o {
	case OrganHeart:
		return p.Heart
	case OrganLiver:
		return p.Liver
	case OrganSpleen:
		return p.Spleen
	case OrganLung:
		return p.Lung
	case OrganKidney:
		return p.Kidney
	case OrganStomach:
		return p.Stomach
	case OrganGallbladder:
		return p.Gallbladder
	}
	return 0
}

// SetValue sets the profile value for an organ.
func (p *OrganProfile) SetValue(o Organ, v float64) {
	switch o {
	case OrganHeart:
		p.Heart = v
	case OrganLiver:
		p.Liver = v
	case OrganSpleen:
		p.Spleen = v
	case OrganLung:
		p.Lung = v
	case OrganKidney:
		p.Kidney = v
	case OrganStomach:
		p.Stomach = v
	case OrganGallbladder:
		p.Gallbladder = v
	}
}

// Add shifts an organ value by delta.
func (p *OrganProfile) Add(o Organ, delta float64) {
	p.SetValue(o, p.Value(o)+delta)
}

// AddAnomaly appends an anomaly label unless already recorded.
func (p *OrganProfile) AddAnomaly(label string) {
	for _, existing := range p.Anomalies {
		if existing == label {
			return
		}
	}
	p.Anomalies = append(p.Anomalies, label)
}

// Clamp bounds a profile value into [0,100].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
