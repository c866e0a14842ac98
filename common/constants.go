package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// DefaultTPS is the fixed simulation rate used when game.yaml omits one.
	DefaultTPS = 60

	DefaultTileSize = 32.0
)
