package api

import "encoding/json"

// Response is the envelope every pool index endpoint returns.
type Response[T any] struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
}

// TokenInfo describes one mint as reported by the index service.
type TokenInfo struct {
	ChainID    int64           `json:"chainId"`
	Address    string          `json:"address"`
	ProgramID  string          `json:"programId"`
	LogoURI    string          `json:"logoURI"`
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Decimals   int32           `json:"decimals"`
	Tags       []string        `json:"tags"`
	Extensions json.RawMessage `json:"extensions"`
}

// PeriodStats carries the per-period volume/APR display data.
type PeriodStats struct {
	Volume      float64   `json:"volume"`
	VolumeQuote float64   `json:"volumeQuote"`
	VolumeFee   float64   `json:"volumeFee"`
	Apr         float64   `json:"apr"`
	FeeApr      float64   `json:"feeApr"`
	PriceMin    float64   `json:"priceMin"`
	PriceMax    float64   `json:"priceMax"`
	RewardApr   []float64 `json:"rewardApr"`
}

// PoolInfo is the pool economics snapshot: mints, decimals and current
// reserve display amounts. Read-only to the rest of the pipeline.
type PoolInfo struct {
	Type              string            `json:"type"`
	ProgramID         string            `json:"programId"`
	ID                string            `json:"id"`
	MintA             TokenInfo         `json:"mintA"`
	MintB             TokenInfo         `json:"mintB"`
	Price             float64           `json:"price"`
	MintAmountA       float64           `json:"mintAmountA"`
	MintAmountB       float64           `json:"mintAmountB"`
	FeeRate           float64           `json:"feeRate"`
	OpenTime          string            `json:"openTime"`
	TVL               float64           `json:"tvl"`
	Day               PeriodStats       `json:"day"`
	Week              PeriodStats       `json:"week"`
	Month             PeriodStats       `json:"month"`
	PoolType          []string          `json:"pooltype"`
	RewardInfos       []json.RawMessage `json:"rewardDefaultInfos"`
	FarmUpcomingCount int32             `json:"farmUpcomingCount"`
	FarmOngoingCount  int32             `json:"farmOngoingCount"`
	FarmFinishedCount int32             `json:"farmFinishedCount"`
	MarketID          string            `json:"marketId"`
	LpMint            TokenInfo         `json:"lpMint"`
	LpPrice           float64           `json:"lpPrice"`
	LpAmount          float64           `json:"lpAmount"`
	BurnPercent       float64           `json:"burnPercent"`
}

// VaultInfo holds the pool vault addresses for each side.
type VaultInfo struct {
	A string `json:"A"`
	B string `json:"B"`
}

// PoolKeys is the on-chain address snapshot for a pool, including the
// external Serum market venue addresses the AMM program requires.
type PoolKeys struct {
	ProgramID          string    `json:"programId"`
	ID                 string    `json:"id"`
	MintA              TokenInfo `json:"mintA"`
	MintB              TokenInfo `json:"mintB"`
	LookupTableAccount string    `json:"lookupTableAccount"`
	OpenTime           string    `json:"openTime"`
	Vault              VaultInfo `json:"vault"`
	Authority          string    `json:"authority"`
	OpenOrders         string    `json:"openOrders"`
	TargetOrders       string    `json:"targetOrders"`
	MintLp             TokenInfo `json:"mintLp"`
	MarketProgramID    string    `json:"marketProgramId"`
	MarketID           string    `json:"marketId"`
	MarketAuthority    string    `json:"marketAuthority"`
	MarketBaseVault    string    `json:"marketBaseVault"`
	MarketQuoteVault   string    `json:"marketQuoteVault"`
	MarketBids         string    `json:"marketBids"`
	MarketAsks         string    `json:"marketAsks"`
	MarketEventQueue   string    `json:"marketEventQueue"`
}
