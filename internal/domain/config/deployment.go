package config

// DeploymentConfig is the per-network deployment configuration
// (<deployments>/<network>.yaml)
type DeploymentConfig struct {
	OpenseaRegistry string          `yaml:"openseaRegistry"`
	Owner           string          `yaml:"owner"`
	Maintainer      string          `yaml:"maintainer"`
	WETH            string          `yaml:"weth"`
	WhitelistURI    string          `yaml:"whitelistUri"`
	SignerKYC       string          `yaml:"signerKYC"`
	TimeBuffer      int64           `yaml:"timeBuffer"`
	Duration        int64           `yaml:"duration"`
	MinBidDiff      int64           `yaml:"minBidDiff"`
	Metadata        []MetadataEntry `yaml:"metadata"`
	PiecesURI       string          `yaml:"piecesURI,omitempty"`

	// Setup and listing inputs
	KeyContract string       `yaml:"keyContract,omitempty"`
	KeyHolders  []string     `yaml:"keyHolders,omitempty"`
	Affiliates  []Affiliate  `yaml:"affiliates,omitempty"`
	Auctions    []AuctionLot `yaml:"auctions,omitempty"`
}

// MetadataEntry maps a token id range start to a base URI
type MetadataEntry struct {
	ID  uint64 `yaml:"id"`
	URI string `yaml:"uri"`
}

// Affiliate is a treasury revenue share recipient
type Affiliate struct {
	Address string `yaml:"address"`
	Share   uint64 `yaml:"share"`
}

// AuctionLot is a token listed on the auction house. ID is a decimal
// uint256 and Price an ether amount such as "0.03".
type AuctionLot struct {
	ID      string `yaml:"id"`
	Price   string `yaml:"price"`
	Limited bool   `yaml:"limited"`
}
