package types

const (
	STORE_DRIVER_MEMORY   = "memory"
	STORE_DRIVER_POSTGRES = "postgres"
)

// DEFAULT_TAGS is offered by the form when the schema document has no tag enum.
var DEFAULT_TAGS = []string{"documentation", "tutorial", "tool", "article", "video"}

const (
	PUBLISH_PATH_PREFIX = "/catalog/"
)
