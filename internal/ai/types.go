package ai

// SceneObject is one object or obstacle the vision model reports. Position is
// relative to the camera view ("left", "right", "ahead", "behind"); distance
// is a free-text estimate like "2m".
type SceneObject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Distance    string `json:"distance"`
	Position    string `json:"position"`
	Confidence  int    `json:"confidence"`
}

// SceneText is a piece of text the vision model read from the scene.
type SceneText struct {
	Type       string `json:"type"`
	Content    string `json:"content"`
	Confidence int    `json:"confidence"`
}

// VisionAnalysis is the structured result of one image analysis pass.
type VisionAnalysis struct {
	Objects     []SceneObject `json:"objects"`
	Obstacles   []SceneObject `json:"obstacles"`
	TextContent []SceneText   `json:"textContent"`
}

// AudioCue is one classified event from transcribed audio.
type AudioCue struct {
	Type           string `json:"type"`
	Content        string `json:"content"`
	Importance     string `json:"importance"` // low, medium, high
	ActionRequired bool   `json:"actionRequired"`
}

// AudioAnalysis is the structured result of one audio classification pass.
type AudioAnalysis struct {
	Events []AudioCue `json:"events"`
}

// Instruction is one generated navigation instruction.
type Instruction struct {
	Instruction       string `json:"instruction"`
	Priority          string `json:"priority"` // normal, urgent, warning
	EstimatedDuration string `json:"estimatedDuration"`
}

// NavigationContext is what the instruction generator gets to work with.
type NavigationContext struct {
	DetectedObjects []string
	RecognizedText  []string
	UserQuery       string
	CurrentLocation string
	Destination     string
}
