package types

import "encoding/json"

// RawVideoRecord is a record as delivered by a record store. Collection fields may hold
// either the structured JSON value or a JSON string carrying the encoded value.
type RawVideoRecord struct {
	ID             string          `json:"id"`
	Tags           json.RawMessage `json:"tags,omitempty"`
	SceneTags      json.RawMessage `json:"sceneTags,omitempty"`
	Emotions       json.RawMessage `json:"emotions,omitempty"`
	Scenes         json.RawMessage `json:"scenes,omitempty"`
	Classification json.RawMessage `json:"classification,omitempty"`
}

// VideoRecord is one analyzed video after normalization.
type VideoRecord struct {
	ID             string         `json:"id"`
	Tags           []string       `json:"tags"`
	SceneTags      []string       `json:"sceneTags"`
	Emotions       []EmotionEvent `json:"emotions"`
	Scenes         []SceneSegment `json:"scenes"`
	Classification Classification `json:"classification"`
}

type EmotionEvent struct {
	TimeOffset string    `json:"timeOffset"`
	Label      string    `json:"label"`
	Intensity  Intensity `json:"intensity"`
}

type SceneSegment struct {
	TimeOffset  string   `json:"timeOffset"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Classification struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
}

// EmotionDistribution is one bar of the emotion histogram.
type EmotionDistribution struct {
	Emotion    string `json:"emotion"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SceneEngagement is one row of the scene ranking.
type SceneEngagement struct {
	Scene         string `json:"scene"`
	Count         int    `json:"count"`
	AvgEngagement int    `json:"avgEngagement"`
}
