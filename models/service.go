package models

// ServiceLine is one selected service within a booking. Quantity defaults
// to 1 when omitted.
type ServiceLine struct {
	Name     string  `bson:"name" json:"name"`
	Provider string  `bson:"provider,omitempty" json:"provider,omitempty"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Duration string  `bson:"duration,omitempty" json:"duration,omitempty"`
	Rating   float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}
