package core

// Color names the role a screen cell plays. The platform picks the actual
// terminal color for each role.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall          // static boundaries and inner walls
	ColorGoal          // the finish area and win banners
	ColorPlayer        // the tilted body
	ColorBottle        // spawned bottles
	ColorHUD           // status lines
	ColorNotice        // pause overlays
	ColorAlert         // round-over banners
)
