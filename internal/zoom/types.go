package zoom

// Channel is a Zoom Team Chat channel.
type Channel struct {
	ID          string `json:"id"`
	JID         string `json:"jid"`
	Name        string `json:"name"`
	Type        int    `json:"type"`
	ChannelURL  string `json:"channel_url"`
	TotalMember int    `json:"total_members"`
}

// ChannelMember is a member of a Team Chat channel.
type ChannelMember struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Message is a Team Chat message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Sender      string `json:"sender"`
	DateTime    string `json:"date_time"`
	Timestamp   int64  `json:"timestamp"`
	ReplyMainID string `json:"reply_main_message_id"`
}

// Contact is a Zoom contact visible to the authorized user.
type Contact struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PresenceStatus string `json:"presence_status"`
}

// User is the authorized Zoom user, from /users/me.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	AccountID   string `json:"account_id"`
	Status      string `json:"status"`
}

// MessageInput describes a message to send. Exactly one of ToChannel or
// ToContact must be set. ReplyMainMessageID makes the message a threaded
// reply to a main message.
type MessageInput struct {
	Message            string
	ToChannel          string
	ToContact          string
	ReplyMainMessageID string
}

// MessageTarget addresses an existing message for update or delete; Zoom
// requires the original conversation to be named alongside the message ID.
type MessageTarget struct {
	ToChannel string
	ToContact string
}
