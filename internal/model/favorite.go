package model

import "time"

// Favorite is an association between a user and one catalog entity.
// (UserID, Kind, EntityID) is unique.
type Favorite struct {
	UserID    int64      `json:"user_id"`
	Kind      EntityKind `json:"kind"`
	EntityID  int64      `json:"entity_id"`
	CreatedOn time.Time  `json:"created_on"`
}

// UserFavorites is a user's favorites resolved to full entities.
type UserFavorites struct {
	Planets    []*Planet    `json:"planets"`
	Characters []*Character `json:"characters"`
	Vehicles   []*Vehicle   `json:"vehicles"`
}

// NewUserFavorites returns an empty set whose lists encode as [] rather than null.
func NewUserFavorites() *UserFavorites {
	return &UserFavorites{
		Planets:    make([]*Planet, 0),
		Characters: make([]*Character, 0),
		Vehicles:   make([]*Vehicle, 0),
	}
}
