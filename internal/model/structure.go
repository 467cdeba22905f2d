package model

// Healthcare structure kinds.
const (
	StructureHopital   = "hopital"
	StructurePharmacie = "pharmacie"
	StructurePoste     = "poste_de_sante"
)

// Structure is a physical healthcare facility with geocoordinates, used
// for proximity search.
type Structure struct {
	Base
	Name      string  `db:"name" json:"name"`
	Kind      string  `db:"kind" json:"kind"`
	Address   string  `db:"address" json:"address,omitempty"`
	Phone     string  `db:"phone" json:"phone,omitempty"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
}

// NearbyStructure is a Structure annotated with its distance from the
// query point, in kilometers.
type NearbyStructure struct {
	Structure
	DistanceKm float64 `json:"distance_km"`
}

type CreateStructureRequest struct {
	Name      string  `json:"name" binding:"required"`
	Kind      string  `json:"kind" binding:"required,oneof=hopital pharmacie poste_de_sante"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

type NearbyQuery struct {
	Latitude  float64 `form:"latitude" binding:"required"`
	Longitude float64 `form:"longitude" binding:"required"`
	RadiusKm  float64 `form:"radius_km"`
	Kind      string  `form:"kind"`
}
