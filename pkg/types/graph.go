package types

type NodeMetadata struct {
	CreationDate    string `json:"creationDate,omitempty"`
	LastUpdatedDate string `json:"lastUpdatedDate,omitempty"`
	Description     string `json:"description,omitempty"`
}

type NetworkNode struct {
	ID       string        `json:"id"`
	Metadata *NodeMetadata `json:"metadata,omitempty"`
	Category string        `json:"category,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
}

type NetworkLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type NetworkData struct {
	Nodes []NetworkNode `json:"nodes"`
	Links []NetworkLink `json:"links"`
}
