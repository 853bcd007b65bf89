package schema

// ComponentDefinition describes one sub-scorer for display purposes.
type ComponentDefinition struct {
	Key     ComponentKey `json:"key" yaml:"key"`
	Name    string       `json:"name" yaml:"name"`
	Purpose string       `json:"purpose" yaml:"purpose"`
	Factors []string     `json:"factors" yaml:"factors"`
	Weight  float64      `json:"weight" yaml:"weight"`
}

// WeightsRenderModel contains all processed data needed for displaying the scoring model.
type WeightsRenderModel struct {
	Title       string                `json:"title" yaml:"title"`
	Description string                `json:"description" yaml:"description"`
	Components  []ComponentDefinition `json:"components" yaml:"components"`
	Formula     string                `json:"formula" yaml:"formula"`
	Labels      map[string]string     `json:"labels" yaml:"labels"`
}
