// Package domain holds DTOs for deforestation http and service contracts
package domain

// Areas are square kilometres rounded to two decimals
// Percentages are relative to the Brazil total of the same year

// StateInput selects one state in one year
// Year zero means the latest year in the dataset
type StateInput struct {
	State string `json:"state" validate:"required,min=2,max=40" example:"PA"`
	Year  int    `json:"year,omitempty" validate:"omitempty,min=2000,max=2099" example:"2024"`
}

// PreviousYear compares a state area with the year before
// AreaKm2 is null and both changes are zero when that year has no data
type PreviousYear struct {
	Year             int      `json:"year" example:"2023"`
	AreaKm2          *float64 `json:"area_km2" example:"3862.4"`
	ChangeKm2        float64  `json:"change_km2" example:"-616.6"`
	ChangePercentage float64  `json:"change_percentage" example:"-15.96"`
}

// StateData is the deforested area of a state in a year
type StateData struct {
	State                  string       `json:"state" example:"Pará"`
	StateCode              string       `json:"state_code" example:"PA"`
	Year                   int          `json:"year" example:"2024"`
	AreaKm2                float64      `json:"area_km2" example:"3245.8"`
	PercentageOfTotal      float64      `json:"percentage_of_total" example:"31.22"`
	Biome                  string       `json:"biome" example:"Amazônia"`
	ComparisonPreviousYear PreviousYear `json:"comparison_previous_year"`
}

// CompareInput names a state, a biome or Brasil and a year range
type CompareInput struct {
	Target    string `json:"state_or_biome" validate:"required,min=2,max=40" example:"Amazonas"`
	YearStart int    `json:"year_start" validate:"required,min=2000,max=2099" example:"2020"`
	YearEnd   int    `json:"year_end" validate:"required,min=2000,max=2099" example:"2024"`
}

// Trend summarizes a comparison
type Trend string

// Trend values, a change beyond five percent either way is a trend
const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// YearArea is one point of a series
type YearArea struct {
	Year    int     `json:"year" example:"2020"`
	AreaKm2 float64 `json:"area_km2" example:"1454.1"`
}

// Comparison is the evolution of a target across a year range
type Comparison struct {
	State            string     `json:"state" example:"Amazonas"`
	StateCode        string     `json:"state_code" example:"AM"`
	Biome            string     `json:"biome" example:"Amazônia"`
	YearStart        int        `json:"year_start" example:"2020"`
	YearEnd          int        `json:"year_end" example:"2024"`
	Data             []YearArea `json:"data"`
	TotalChangeKm2   float64    `json:"total_change_km2" example:"-30.3"`
	PercentageChange float64    `json:"percentage_change" example:"-2.08"`
	Trend            Trend      `json:"trend" swaggertype:"string" enums:"increasing,decreasing,stable" example:"stable"`
}

// RankingInput selects the top states of a year
type RankingInput struct {
	Year  int    `json:"year" validate:"required,min=2000,max=2099" example:"2024"`
	Order string `json:"order,omitempty" validate:"omitempty,oneof=asc desc" example:"desc"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=27" example:"5"`
	Biome string `json:"biome,omitempty" validate:"omitempty,max=40" example:"Amazônia"`
}

// RankingRow is one ranked state
type RankingRow struct {
	Position          int     `json:"position" example:"1"`
	State             string  `json:"state" example:"Pará"`
	StateCode         string  `json:"state_code" example:"PA"`
	AreaKm2           float64 `json:"area_km2" example:"3245.8"`
	PercentageOfTotal float64 `json:"percentage_of_total" example:"31.22"`
	Biome             string  `json:"biome" example:"Amazônia"`
}

// Ranking orders states by area in a year
type Ranking struct {
	Year           int          `json:"year" example:"2024"`
	TotalBrazilKm2 float64      `json:"total_brazil_km2" example:"10395.8"`
	Order          string       `json:"order" example:"desc"`
	BiomeFilter    string       `json:"biome_filter,omitempty" example:"Amazônia"`
	Ranking        []RankingRow `json:"ranking"`
}

// BiomesInput selects the year of a biome comparison
type BiomesInput struct {
	Year int `json:"year" validate:"required,min=2000,max=2099" example:"2024"`
}

// BiomeRow is the summed area of one biome
type BiomeRow struct {
	Biome             string  `json:"biome" example:"Amazônia"`
	AreaKm2           float64 `json:"area_km2" example:"8399"`
	PercentageOfTotal float64 `json:"percentage_of_total" example:"80.79"`
	NumStates         int     `json:"num_states" example:"9"`
}

// BiomeComparison ranks biomes by area in a year
type BiomeComparison struct {
	Year           int        `json:"year" example:"2024"`
	TotalBrazilKm2 float64    `json:"total_brazil_km2" example:"10395.8"`
	Biomes         []BiomeRow `json:"biomes"`
}

// StatesInput optionally restricts the listing to one biome
type StatesInput struct {
	Biome string `json:"biome,omitempty" example:"Pampa"`
}

// StateInfo describes a state of the reference table
type StateInfo struct {
	Name  string `json:"name" example:"Pará"`
	Code  string `json:"code" example:"PA"`
	Biome string `json:"biome" example:"Amazônia"`
}

// StateList is the states listing
type StateList struct {
	States      []StateInfo `json:"states"`
	Total       int         `json:"total" example:"27"`
	BiomeFilter string      `json:"biome_filter,omitempty" example:"Pampa"`
}

// YearList is the years with data
type YearList struct {
	Years []int `json:"years" example:"2020,2021,2022,2023,2024"`
	Total int   `json:"total" example:"5"`
}

// BiomeList is the biome listing
type BiomeList struct {
	Biomes []string `json:"biomes" example:"Amazônia,Cerrado"`
	Total  int      `json:"total" example:"6"`
}
