package models

// Answer option sets. The empty string is the unanswered state for every
// categorical field, so a zero AnswerRecord is a valid, fully unanswered
// survey.

type OwnershipStatus string

const (
	OwnershipOwnerOccupancy OwnershipStatus = "owner_occupancy"
	OwnershipPrivateTenancy OwnershipStatus = "private_tenancy"
	OwnershipLandlord       OwnershipStatus = "landlord"
)

func (v OwnershipStatus) IsValid() bool {
	return oneOf(v, OwnershipOwnerOccupancy, OwnershipPrivateTenancy, OwnershipLandlord)
}

type Country string

const (
	CountryEngland         Country = "england"
	CountryScotland        Country = "scotland"
	CountryWales           Country = "wales"
	CountryNorthernIreland Country = "northern_ireland"
	CountryOther           Country = "other"
)

func (v Country) IsValid() bool {
	return oneOf(v, CountryEngland, CountryScotland, CountryWales, CountryNorthernIreland, CountryOther)
}

// IsServed reports whether the service covers homes in this country.
func (v Country) IsServed() bool {
	return v == CountryEngland || v == CountryWales
}

type PropertyType string

const (
	PropertyHouse    PropertyType = "house"
	PropertyBungalow PropertyType = "bungalow"
	PropertyFlat     PropertyType = "apartment_flat_or_maisonette"
	PropertyParkHome PropertyType = "park_home_or_mobile_home"
	PropertyOther    PropertyType = "other"
)

func (v PropertyType) IsValid() bool {
	return oneOf(v, PropertyHouse, PropertyBungalow, PropertyFlat, PropertyParkHome, PropertyOther)
}

// HouseType is shared by houses and bungalows.
type HouseType string

const (
	HouseDetached     HouseType = "detached"
	HouseSemiDetached HouseType = "semi_detached"
	HouseEndTerrace   HouseType = "end_terrace"
	HouseTerraced     HouseType = "terraced"
)

func (v HouseType) IsValid() bool {
	return oneOf(v, HouseDetached, HouseSemiDetached, HouseEndTerrace, HouseTerraced)
}

type BungalowType = HouseType

type FlatType string

const (
	FlatTopFloor    FlatType = "top_floor"
	FlatMiddleFloor FlatType = "middle_floor"
	FlatGroundFloor FlatType = "ground_floor"
)

func (v FlatType) IsValid() bool {
	return oneOf(v, FlatTopFloor, FlatMiddleFloor, FlatGroundFloor)
}

type ParkHomeType string

const (
	ParkHomeSingleUnit ParkHomeType = "single_unit"
	ParkHomeTwinUnit   ParkHomeType = "twin_unit"
)

func (v ParkHomeType) IsValid() bool {
	return oneOf(v, ParkHomeSingleUnit, ParkHomeTwinUnit)
}

type WallType string

const (
	WallSolid             WallType = "solid"
	WallInsulatedCavity   WallType = "insulated_cavity"
	WallUninsulatedCavity WallType = "uninsulated_cavity"
	WallMixed             WallType = "mixed"
	WallOther             WallType = "other"
	WallDoNotKnow         WallType = "do_not_know"
)

func (v WallType) IsValid() bool {
	return oneOf(v, WallSolid, WallInsulatedCavity, WallUninsulatedCavity, WallMixed, WallOther, WallDoNotKnow)
}

// IsUnknown is true when the citizen skipped the question or said they do
// not know.
func (v WallType) IsUnknown() bool {
	return v == "" || v == WallDoNotKnow
}

type RoofConstruction string

const (
	RoofPitched RoofConstruction = "pitched"
	RoofFlat    RoofConstruction = "flat"
	RoofMixed   RoofConstruction = "mixed"
)

func (v RoofConstruction) IsValid() bool {
	return oneOf(v, RoofPitched, RoofFlat, RoofMixed)
}

// YesNoDoNotKnow answers roof insulation and hot water cylinder questions.
type YesNoDoNotKnow string

const (
	AnswerYes       YesNoDoNotKnow = "yes"
	AnswerNo        YesNoDoNotKnow = "no"
	AnswerDoNotKnow YesNoDoNotKnow = "do_not_know"
)

func (v YesNoDoNotKnow) IsValid() bool {
	return oneOf(v, AnswerYes, AnswerNo, AnswerDoNotKnow)
}

type RoofInsulated = YesNoDoNotKnow

type HotWaterCylinder = YesNoDoNotKnow

type OutdoorSpace string

const (
	OutdoorSpaceYes OutdoorSpace = "yes"
	OutdoorSpaceNo  OutdoorSpace = "no"
)

func (v OutdoorSpace) IsValid() bool {
	return oneOf(v, OutdoorSpaceYes, OutdoorSpaceNo)
}

type GlazingType string

const (
	GlazingSingle         GlazingType = "single_glazed"
	GlazingDoubleOrTriple GlazingType = "double_or_triple_glazed"
	GlazingBoth           GlazingType = "both"
)

func (v GlazingType) IsValid() bool {
	return oneOf(v, GlazingSingle, GlazingDoubleOrTriple, GlazingBoth)
}

type HeatingType string

const (
	HeatingGasBoiler            HeatingType = "gas_boiler"
	HeatingOilBoiler            HeatingType = "oil_boiler"
	HeatingLPGBoiler            HeatingType = "lpg_boiler"
	HeatingStorageHeater        HeatingType = "storage_heater"
	HeatingDirectActingElectric HeatingType = "direct_acting_electric"
	HeatingHeatPump             HeatingType = "heat_pump"
	HeatingOther                HeatingType = "other"
	HeatingDoNotKnow            HeatingType = "do_not_know"
)

func (v HeatingType) IsValid() bool {
	return oneOf(v,
		HeatingGasBoiler, HeatingOilBoiler, HeatingLPGBoiler, HeatingStorageHeater,
		HeatingDirectActingElectric, HeatingHeatPump, HeatingOther, HeatingDoNotKnow,
	)
}

type HeatingPattern string

const (
	PatternAllDayAndNight      HeatingPattern = "all_day_and_night"
	PatternAllDayButOffAtNight HeatingPattern = "all_day_but_off_at_night"
	PatternOnceADay            HeatingPattern = "once_a_day"
	PatternTwiceADay           HeatingPattern = "twice_a_day"
	PatternOther               HeatingPattern = "other"
)

func (v HeatingPattern) IsValid() bool {
	return oneOf(v, PatternAllDayAndNight, PatternAllDayButOffAtNight, PatternOnceADay, PatternTwiceADay, PatternOther)
}

func oneOf[T ~string](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
