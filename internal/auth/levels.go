package auth

// Access levels used by route gates. Higher levels unlock more destructive operations.
const (
	LevelCustomer  = 1
	LevelModerator = 2
	LevelAdmin     = 3

	MinAccessLevel = 1
	MaxAccessLevel = 10
)

// ValidLevel reports whether level lies within the assignable range.
func ValidLevel(level int) bool {
	return level >= MinAccessLevel && level <= MaxAccessLevel
}
