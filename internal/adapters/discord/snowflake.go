package discord

import "strconv"

// The core works with numeric snowflakes; discordgo speaks strings. Both
// helpers live at this boundary only.

func parseSnowflake(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

func formatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}
