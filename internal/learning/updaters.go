package learning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// CrabTrapWeightMultiplier is the reduced success-count increment used for
// trap checks rather than active-rod catches (spec §4.8): a trap left
// unattended for hours is weaker evidence of conditions than a rod strike.
const CrabTrapWeightMultiplier = 0.15

// Updater applies learning updates from a single catch to the three
// condition-effect tables it is responsible for.
type Updater struct {
	store store.Store
}

// NewUpdater builds an Updater against the engine's store.
func NewUpdater(s store.Store) *Updater {
	return &Updater{store: s}
}

// UpdateRigEffect increments success_count by exactly 1 regardless of any
// crab-trap multiplier (spec §9 open question #4: RigEffect's weight is
// never scaled down for traps, only ZoneConditionEffect/RigConditionEffect
// are) and recomputes weight = min(3, ln(success_count+1)).
func (u *Updater) UpdateRigEffect(ctx context.Context, species, zoneID, rigType string, now time.Time) (*store.RigEffect, error) {
	if rigType == "" || rigType == "unknown" {
		return nil, nil
	}

	existing, err := u.store.GetRigEffect(ctx, species, zoneID, rigType)
	if err != nil {
		return nil, fmt.Errorf("get rig effect: %w", err)
	}

	effect := store.RigEffect{Species: species, ZoneID: zoneID, RigType: rigType, LastUsed: now}
	if existing != nil {
		effect.SuccessCount = existing.SuccessCount + 1
	} else {
		effect.SuccessCount = 1
	}
	effect.Weight = math.Min(3.0, math.Log(effect.SuccessCount+1))

	if err := u.store.UpsertRigEffect(ctx, effect); err != nil {
		return nil, fmt.Errorf("upsert rig effect: %w", err)
	}
	return &effect, nil
}

// UpdateZoneConditionEffect bands conditions and increments success_count by
// weightMultiplier (1.0 for rod catches, CrabTrapWeightMultiplier for trap
// checks), recomputing weight = min(4, ln(success_count+1)). Returns nil,
// nil if the tide band can't be classified.
func (u *Updater) UpdateZoneConditionEffect(ctx context.Context, species, zoneID string, cond Conditions, weightMultiplier float64) (*store.ZoneConditionEffect, error) {
	tideBand := ClassifyTide(cond.TideStage)
	if tideBand == "unknown" {
		return nil, nil
	}
	clarityBand := ClassifyClarity(cond.Clarity)
	windBand := ClassifyWind(cond.WindDirection, species)
	currentBand := ClassifyCurrent(cond.CurrentSpeedMph)

	existing, err := u.store.GetZoneConditionEffect(ctx, species, zoneID, tideBand, clarityBand, windBand, currentBand)
	if err != nil {
		return nil, fmt.Errorf("get zone condition effect: %w", err)
	}

	effect := store.ZoneConditionEffect{
		Species: species, ZoneID: zoneID,
		TideBand: tideBand, ClarityBand: clarityBand, WindBand: windBand, CurrentBand: currentBand,
	}
	if existing != nil {
		effect.SuccessCount = existing.SuccessCount + weightMultiplier
	} else {
		effect.SuccessCount = weightMultiplier
	}
	effect.Weight = math.Min(4.0, math.Log(effect.SuccessCount+1))

	if err := u.store.UpsertZoneConditionEffect(ctx, effect); err != nil {
		return nil, fmt.Errorf("upsert zone condition effect: %w", err)
	}
	return &effect, nil
}

// UpdateRigConditionEffect bands tide/clarity (zone-independent) and
// increments success_count by weightMultiplier, capping weight at 4.
// Returns nil, nil if rigType or the tide band is unusable.
func (u *Updater) UpdateRigConditionEffect(ctx context.Context, species, rigType string, cond Conditions, weightMultiplier float64) (*store.RigConditionEffect, error) {
	if rigType == "" || rigType == "unknown" {
		return nil, nil
	}
	tideBand := ClassifyTide(cond.TideStage)
	if tideBand == "unknown" {
		return nil, nil
	}
	clarityBand := ClassifyClarity(cond.Clarity)

	existing, err := u.store.GetRigConditionEffect(ctx, species, rigType, tideBand, clarityBand)
	if err != nil {
		return nil, fmt.Errorf("get rig condition effect: %w", err)
	}

	effect := store.RigConditionEffect{Species: species, RigType: rigType, TideBand: tideBand, ClarityBand: clarityBand}
	if existing != nil {
		effect.SuccessCount = existing.SuccessCount + weightMultiplier
	} else {
		effect.SuccessCount = weightMultiplier
	}
	effect.Weight = math.Min(4.0, math.Log(effect.SuccessCount+1))

	if err := u.store.UpsertRigConditionEffect(ctx, effect); err != nil {
		return nil, fmt.Errorf("upsert rig condition effect: %w", err)
	}
	return &effect, nil
}

// ZoneConditionWeight returns the learned weight (0-4) for species+zone
// under the given conditions, or 0 if no data exists.
func (u *Updater) ZoneConditionWeight(ctx context.Context, species, zoneID string, cond Conditions) (float64, error) {
	tideBand := ClassifyTide(cond.TideStage)
	if tideBand == "unknown" {
		return 0, nil
	}
	clarityBand := ClassifyClarity(cond.Clarity)
	windBand := ClassifyWind(cond.WindDirection, species)
	currentBand := ClassifyCurrent(cond.CurrentSpeedMph)

	effect, err := u.store.GetZoneConditionEffect(ctx, species, zoneID, tideBand, clarityBand, windBand, currentBand)
	if err != nil {
		return 0, fmt.Errorf("get zone condition weight: %w", err)
	}
	if effect == nil {
		return 0, nil
	}
	return effect.Weight, nil
}

// RigConditionWeight returns the learned weight (0-4) for a rig under the
// given conditions, or 0 if no data exists.
func (u *Updater) RigConditionWeight(ctx context.Context, species, rigType string, cond Conditions) (float64, error) {
	if rigType == "" {
		return 0, nil
	}
	tideBand := ClassifyTide(cond.TideStage)
	if tideBand == "unknown" {
		return 0, nil
	}
	clarityBand := ClassifyClarity(cond.Clarity)

	effect, err := u.store.GetRigConditionEffect(ctx, species, rigType, tideBand, clarityBand)
	if err != nil {
		return 0, fmt.Errorf("get rig condition weight: %w", err)
	}
	if effect == nil {
		return 0, nil
	}
	return effect.Weight, nil
}

// RigWeight returns the learned per-(species,zone,rig) weight (0-3), or 0.
func (u *Updater) RigWeight(ctx context.Context, species, zoneID, rigType string) (float64, error) {
	effect, err := u.store.GetRigEffect(ctx, species, zoneID, rigType)
	if err != nil {
		return 0, fmt.Errorf("get rig weight: %w", err)
	}
	if effect == nil {
		return 0, nil
	}
	return effect.Weight, nil
}

// BestRigForZone returns the highest-weighted rig with at least minUses
// successes, or "", false if no rig qualifies (spec §9 open question #6:
// the tip generator's threshold is success_count >= 2, not the original's
// default of 3).
func (u *Updater) BestRigForZone(ctx context.Context, species, zoneID string, minUses float64) (string, bool, error) {
	best, err := u.store.BestRigEffect(ctx, species, zoneID, minUses)
	if err != nil {
		return "", false, fmt.Errorf("best rig for zone: %w", err)
	}
	if best == nil {
		return "", false, nil
	}
	return best.RigType, true, nil
}
