package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"
	ERROR_FORBIDDEN         = "error.forbidden"

	ERROR_RESOURCE_NOT_FOUND  = "error.resource.notfound"
	ERROR_RESOURCE_INVALID    = "error.resource.invalid"
	ERROR_IMPORT_MALFORMED    = "error.import.malformed"
	ERROR_STAR_FETCH_FAILED   = "error.star.fetch_failed"
	ERROR_STAR_MISSING_TOKEN  = "error.star.missing_token"
	ERROR_STAR_INVALID_REPO   = "error.star.invalid_repo"
	ERROR_PUBLISH_UNAVAILABLE = "error.publish.unavailable"

	VALIDATE_TITLE_REQUIRED       = "validate.title.required"
	VALIDATE_DESCRIPTION_REQUIRED = "validate.description.required"
	VALIDATE_URL_REQUIRED         = "validate.url.required"
	VALIDATE_URL_INVALID          = "validate.url.invalid"
	VALIDATE_FIELD_INVALID        = "validate.field.invalid"

	MESSAGE_RESOURCE_ADDED = "message.resource.added"
)
