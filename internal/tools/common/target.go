package common

// ChannelFromArgs extracts the target channel ID from tool arguments.
// Checks "channel_id" first, then "to_channel".
func ChannelFromArgs(args map[string]interface{}) string {
	if v, ok := args["channel_id"].(string); ok && v != "" {
		return v
	}
	if v, ok := args["to_channel"].(string); ok && v != "" {
		return v
	}
	return ""
}

// ContactFromArgs extracts the target contact email from tool arguments.
func ContactFromArgs(args map[string]interface{}) string {
	if v, ok := args["to_contact"].(string); ok && v != "" {
		return v
	}
	return ""
}
