package constants

const (
	// DataFormate is the timestamp layout stored in created_at/updated_at columns.
	DataFormate = "2006-01-02 15:04:05"

	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100

	// MaxCommentLength bounds comment content in characters.
	MaxCommentLength = 500
)
