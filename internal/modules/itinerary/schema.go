// README: Route JSON schema, shared by the prompt text and the provider-side response schema.
package itinerary

import "encoding/json"

// SchemaNode is a provider-neutral subset of JSON Schema. LLM providers either
// embed its JSON form in the prompt or translate it into their own schema type.
type SchemaNode struct {
	Type       string                 `json:"type"`
	Properties map[string]*SchemaNode `json:"properties,omitempty"`
	Items      *SchemaNode            `json:"items,omitempty"`
	Required   []string               `json:"required,omitempty"`
	Enum       []string               `json:"enum,omitempty"`
	MinItems   int                    `json:"minItems,omitempty"`
	MaxItems   int                    `json:"maxItems,omitempty"`
}

// RouteSchema describes the Itinerary wire shape requested from the model.
// It is built once at startup and shared read-only.
type RouteSchema struct {
	root *SchemaNode
	text string
}

func NewRouteSchema() *RouteSchema {
	root := &SchemaNode{
		Type: "object",
		Properties: map[string]*SchemaNode{
			"Country":       {Type: "string"},
			"travelType":    {Type: "string", Enum: []string{string(ModeCar), string(ModeBike)}},
			"TotalDistance": {Type: "number"},
			"Day1":          daySchema(),
			"Day2":          daySchema(),
			"Day3":          daySchema(),
		},
		Required: []string{"Country", "travelType", "TotalDistance", "Day1", "Day2", "Day3"},
	}
	text, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		// Static tree of strings and ints; marshaling cannot fail.
		panic(err)
	}
	return &RouteSchema{root: root, text: string(text)}
}

func daySchema() *SchemaNode {
	return &SchemaNode{
		Type: "object",
		Properties: map[string]*SchemaNode{
			"waypoints": {
				Type:     "array",
				MinItems: 1,
				Items: &SchemaNode{
					Type: "object",
					Properties: map[string]*SchemaNode{
						"name":        {Type: "string"},
						"hasTrek":     {Type: "boolean"},
						"trekDetails": {Type: "string"},
						"information": {Type: "string"},
						"position": {
							Type:     "array",
							Items:    &SchemaNode{Type: "number"},
							MinItems: 2,
							MaxItems: 2,
						},
					},
					Required: []string{"name", "hasTrek", "information", "position"},
				},
			},
			"dailyDistance": {Type: "number"},
			"dayRecap":      {Type: "string"},
		},
		Required: []string{"waypoints", "dailyDistance", "dayRecap"},
	}
}

// Root returns the schema tree. Callers must not modify it.
func (s *RouteSchema) Root() *SchemaNode { return s.root }

// String returns the indented JSON form of the schema.
func (s *RouteSchema) String() string { return s.text }
