package types

// NoneKey is the catalog key of the zero-cost placeholder entry
const NoneKey = "none"

// Choice is an included equipment selection. A nil *Choice means the
// sub-item is not included; there is no separate flag to keep in sync.
type Choice struct {
	Key      string `json:"key" yaml:"key"`
	Quantity int    `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Include returns an included selection. Empty and "none" keys collapse
// to not included.
func Include(key string, qty int) *Choice {
	if key == "" || key == NoneKey {
		return nil
	}
	if qty < 1 {
		qty = 1
	}
	return &Choice{Key: key, Quantity: qty}
}

// Included reports whether the sub-item contributes cost
func (c *Choice) Included() bool {
	return c != nil && c.Key != "" && c.Key != NoneKey
}

// Qty is 0 when not included and at least 1 otherwise
func (c *Choice) Qty() int {
	if !c.Included() {
		return 0
	}
	if c.Quantity < 1 {
		return 1
	}
	return c.Quantity
}

// Selected returns the catalog key, or NoneKey
func (c *Choice) Selected() string {
	if !c.Included() {
		return NoneKey
	}
	return c.Key
}

// Equipment is the equipment package. Every sub-item is either nil (not
// included) or a Choice.
type Equipment struct {
	Pump           *Choice `json:"pump" yaml:"pump"`
	Filter         *Choice `json:"filter" yaml:"filter"`
	Cleaner        *Choice `json:"cleaner" yaml:"cleaner"`
	Heater         *Choice `json:"heater" yaml:"heater"`
	Automation     *Choice `json:"automation" yaml:"automation"`
	SaltSystem     *Choice `json:"saltSystem" yaml:"saltSystem"`
	AutoFillSystem *Choice `json:"autoFillSystem" yaml:"autoFillSystem"`

	AuxiliaryPumps []Choice `json:"auxiliaryPumps" yaml:"auxiliaryPumps"`

	// PoolLights[0] and SpaLights[0] are the primary lights
	PoolLights []Choice `json:"poolLights" yaml:"poolLights"`
	SpaLights  []Choice `json:"spaLights" yaml:"spaLights"`

	HasHeaterFlowUpgrade bool `json:"upgradeToVersaFlo" yaml:"upgradeToVersaFlo"`
	AutomationZones      int  `json:"automationZones" yaml:"automationZones"`
}

// LightCount is the number of pool and spa lights
func (e Equipment) LightCount() int {
	n := 0
	for i := range e.PoolLights {
		n += e.PoolLights[i].Qty()
	}
	for i := range e.SpaLights {
		n += e.SpaLights[i].Qty()
	}
	return n
}

// ExtraLights is the number of lights beyond the first one
func (e Equipment) ExtraLights() int {
	if n := e.LightCount(); n > 1 {
		return n - 1
	}
	return 0
}

// EnablePoolLighting adds a primary pool light if there is none
func (e *Equipment) EnablePoolLighting(key string) {
	if len(e.PoolLights) == 0 {
		e.PoolLights = []Choice{{Key: key, Quantity: 1}}
	}
}

// AddPoolLight appends an additional pool light, or the primary one when
// lighting is off.
func (e *Equipment) AddPoolLight(key string) {
	if len(e.PoolLights) == 0 {
		e.EnablePoolLighting(key)
		return
	}
	e.PoolLights = append(e.PoolLights, Choice{Key: key, Quantity: 1})
}

// DisablePoolLighting removes every pool light
func (e *Equipment) DisablePoolLighting() {
	e.PoolLights = nil
}

// EnableSpaLighting adds a primary spa light if there is none
func (e *Equipment) EnableSpaLighting(key string) {
	if len(e.SpaLights) == 0 {
		e.SpaLights = []Choice{{Key: key, Quantity: 1}}
	}
}

// DisableSpaLighting removes every spa light
func (e *Equipment) DisableSpaLighting() {
	e.SpaLights = nil
}
