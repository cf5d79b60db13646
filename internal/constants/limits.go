package constants

const (
	TitleMaxLength = 255

	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
