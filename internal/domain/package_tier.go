package domain

// PackageTier is a pricing option chosen at booking
type PackageTier string

const (
	TierSingle              PackageTier = "single"
	TierIntro               PackageTier = "intro"
	TierMonthly             PackageTier = "monthly"
	TierThreeMonth          PackageTier = "3month"
	TierPack5               PackageTier = "pack_5"
	TierPack8               PackageTier = "pack_8"
	TierPack10              PackageTier = "pack_10"
	TierPack12              PackageTier = "pack_12"
	TierMember              PackageTier = "member"
	TierNonMember           PackageTier = "non_member"
	TierBundleFireIce       PackageTier = "bundle_fire_ice"
	TierBundlePilatesPlunge PackageTier = "bundle_pilates_plunge"
)

// PackageTiers all known tiers in display order
var PackageTiers = []PackageTier{
	TierSingle,
	TierIntro,
	TierMonthly,
	TierThreeMonth,
	TierPack5,
	TierPack8,
	TierPack10,
	TierPack12,
	TierMember,
	TierNonMember,
	TierBundleFireIce,
	TierBundlePilatesPlunge,
}

// IsKnown true for tiers in PackageTiers
func (t PackageTier) IsKnown() bool {
	for _, known := range PackageTiers {
		if t == known {
			return true
		}
	}
	return false
}

// PriceColumn name of the classes table column holding this tier's price
func (t PackageTier) PriceColumn() string {
	return "price_" + string(t)
}

// Label human readable package name
func (t PackageTier) Label() string {
	switch t {
	case TierSingle:
		return "Single Class"
	case TierIntro:
		return "Intro Offer"
	case TierMonthly:
		return "Monthly Unlimited"
	case TierThreeMonth:
		return "3 Month Unlimited"
	case TierPack5:
		return "5 Class Pack"
	case TierPack8:
		return "8 Class Pack"
	case TierPack10:
		return "10 Class Pack"
	case TierPack12:
		return "12 Class Pack"
	case TierMember:
		return "Member"
	case TierNonMember:
		return "Non-member"
	case TierBundleFireIce:
		return "Fire & Ice Bundle"
	case TierBundlePilatesPlunge:
		return "Pilates & Plunge Bundle"
	}
	return string(t)
}
