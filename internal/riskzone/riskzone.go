// Package riskzone derives the concentric evacuation zones around an
// impact point. Zone synthesis is purely arithmetic: every radius is a
// fixed multiple of the fireball radius, and geographic work belongs
// to the callers that render or route against the zones.
package riskzone

import (
	"sort"

	"github.com/astroshield/go-impact-sim/internal/physics"
)

type Kind string

const (
	KindDirect    Kind = "direct"
	KindTsunami   Kind = "tsunami"
	KindModerate  Kind = "moderate"
	KindShockwave Kind = "shockwave"
	KindSeismic   Kind = "seismic"
)

// Zone is one concentric ring. Zones nest: a zone contains every zone
// with a smaller radius.
type Zone struct {
	Kind     Kind    `json:"kind"`
	RadiusKM float64 `json:"radius_km"`
	Label    string  `json:"label"`
}

// Radius multipliers applied to the fireball radius.
const (
	DirectMultiplier    = 0.5
	TsunamiMultiplier   = 0.8
	ModerateMultiplier  = 1.5
	ShockwaveMultiplier = 5.0
	SeismicMultiplier   = 10.0
)

var labels = map[Kind]string{
	KindDirect:    "Total destruction around the impact point",
	KindTsunami:   "Coastal inundation from impact-generated waves",
	KindModerate:  "Severe structural damage and thermal injury",
	KindShockwave: "Blast overpressure and window-shattering winds",
	KindSeismic:   "Ground shaking felt, light structural damage",
}

// Zones builds the ordered ring set for the given effects. The tsunami
// ring is present only for ocean impacts. The result is sorted by
// strictly increasing radius.
func Zones(effects physics.Effects, params physics.Parameters) []Zone {
	r := effects.FireballRadiusKM

	zones := []Zone{
		{Kind: KindDirect, RadiusKM: DirectMultiplier * r},
		{Kind: KindModerate, RadiusKM: ModerateMultiplier * r},
		{Kind: KindShockwave, RadiusKM: ShockwaveMultiplier * r},
		{Kind: KindSeismic, RadiusKM: SeismicMultiplier * r},
	}
	if params.TargetType == physics.TargetOcean {
		zones = append(zones, Zone{Kind: KindTsunami, RadiusKM: TsunamiMultiplier * r})
	}

	for i := range zones {
		zones[i].Label = labels[zones[i].Kind]
	}

	sort.Slice(zones, func(i, j int) bool {
		return zones[i].RadiusKM < zones[j].RadiusKM
	})

	return zones
}
