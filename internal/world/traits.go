package world

// Trait is a personality attribute of a settlement leader. The set below is
// the closed vocabulary; the scorer's weight table is keyed by it.
type Trait string

const (
	TraitDefensive  Trait = "DEFENSIVE"
	TraitAggressive Trait = "AGGRESSIVE"
	TraitSupportive Trait = "SUPPORTIVE"
	TraitStrategic  Trait = "STRATEGIC"
	TraitEconomical Trait = "ECONOMICAL"
	TraitExpansive  Trait = "EXPANSIVE"
	TraitCultural   Trait = "CULTURAL"
	TraitSpiritual  Trait = "SPIRITUAL"
)

// Traits returns the full trait vocabulary in declaration order.
func Traits() []Trait {
	return []Trait{
		TraitDefensive,
		TraitAggressive,
		TraitSupportive,
		TraitStrategic,
		TraitEconomical,
		TraitExpansive,
		TraitCultural,
		TraitSpiritual,
	}
}

// Attribute is a category tag on a building blueprint, matched against leader
// trait weights when scoring construction options.
type Attribute string

const (
	AttrDefensive      Attribute = "DEFENSIVE"
	AttrMilitary       Attribute = "MILITARY"
	AttrEconomic       Attribute = "ECONOMIC"
	AttrProduction     Attribute = "PRODUCTION"
	AttrExpansion      Attribute = "EXPANSION"
	AttrResidential    Attribute = "RESIDENTIAL"
	AttrCultural       Attribute = "CULTURAL"
	AttrSpiritual      Attribute = "SPIRITUAL"
	AttrAdministrative Attribute = "ADMINISTRATIVE"
	AttrInfrastructure Attribute = "INFRASTRUCTURE"
)

// Attributes returns the full building-attribute vocabulary in declaration order.
func Attributes() []Attribute {
	return []Attribute{
		AttrDefensive,
		AttrMilitary,
		AttrEconomic,
		AttrProduction,
		AttrExpansion,
		AttrResidential,
		AttrCultural,
		AttrSpiritual,
		AttrAdministrative,
		AttrInfrastructure,
	}
}

// RelationshipStatus labels a character-faction standing.
type RelationshipStatus string

const (
	StatusHostile    RelationshipStatus = "hostile"
	StatusUnfriendly RelationshipStatus = "unfriendly"
	StatusNeutral    RelationshipStatus = "neutral"
	StatusFriendly   RelationshipStatus = "friendly"
	StatusAllied     RelationshipStatus = "allied"
)

// StatusForScore derives a relationship status from a reputation score.
// Bands: [-100,-60] hostile, (-60,-20] unfriendly, (-20,20) neutral,
// [20,60) friendly, [60,100] allied.
func StatusForScore(score int) RelationshipStatus {
	switch {
	case score <= -60:
		return StatusHostile
	case score <= -20:
		return StatusUnfriendly
	case score < 20:
		return StatusNeutral
	case score < 60:
		return StatusFriendly
	default:
		return StatusAllied
	}
}
