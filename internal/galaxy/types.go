package galaxy

// Resource is one entry of the resource catalog. Name and ShortName are each
// unique within the catalog, ignoring case.
type Resource struct {
	Name        string  `json:"resource"`
	ShortName   string  `json:"shortName"`
	Rarity      string  `json:"rarity"`
	Type        string  `json:"type"`
	Mass        float64 `json:"mass"`
	Value       float64 `json:"value"`
	ValueToMass float64 `json:"valueToMass"`
}

// Biome is a named surface region and the fraction of the body it covers
type Biome struct {
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
}

// OrganicResource links an organism to the resource it yields
type OrganicResource struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
}

// Body is the canonical record for one celestial body. Its identity is the
// (System, Name) pair; collections are always non-nil so an empty one
// serializes as an empty list.
type Body struct {
	System        string            `json:"system"`
	Name          string            `json:"name"`
	Atmosphere    string            `json:"atmosphere"`
	Fauna         int               `json:"fauna"`
	Flora         int               `json:"flora"`
	Gravity       float64           `json:"gravity"`
	HabRank       int               `json:"hab_rank"`
	Magnetosphere string            `json:"magnetosphere"`
	PlanetLength  int               `json:"planet_length"`
	Temperature   string            `json:"temperature"`
	Type          string            `json:"type"`
	Water         string            `json:"water"`
	Biomes        []Biome           `json:"biomes"`
	Traits        []string          `json:"traits"`
	Resources     []string          `json:"resources"`
	Domesticable  []OrganicResource `json:"domesticable"`
	Gatherable    []OrganicResource `json:"gatherable"`
}

// Galaxy is the canonical dataset: bodies ordered by system, then body name
type Galaxy []Body
