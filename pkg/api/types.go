package api

import "time"

// User is the account identity as the server reports it. Followers and
// Following carry user ids; the server guarantees a user never appears
// in their own sets.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	Role      string    `json:"role"` // user, admin
	Followers []string  `json:"followers,omitempty"`
	Following []string  `json:"following,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// Location is an optional place attached to a post.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat,omitempty"`
	Lng  float64 `json:"lng,omitempty"`
}

// TagPosition is a tagged user's position on the image, both axes in
// the 0..100 percent range.
type TagPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TaggedUser marks a user tagged on a post's image.
type TaggedUser struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Position TagPosition `json:"position"`
}

// Post is a feed entry. Likes and SavedBy hold user ids with toggle
// semantics: each id appears at most once.
type Post struct {
	ID             string       `json:"id"`
	AuthorID       string       `json:"author_id"`
	AuthorUsername string       `json:"author_username,omitempty"`
	Description    string       `json:"description"`
	ImageURL       string       `json:"image_url"`
	Location       *Location    `json:"location,omitempty"`
	TaggedUsers    []TaggedUser `json:"tagged_users,omitempty"`
	Likes          []string     `json:"likes"`
	SavedBy        []string     `json:"saved_by"`
	Comments       []Comment    `json:"comments"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Comment is a post comment with its own like set, independent of the
// parent post's likes.
type Comment struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Text           string    `json:"text"`
	Likes          []string  `json:"likes"`
	Replies        []Reply   `json:"replies"`
	CreatedAt      time.Time `json:"created_at"`
}

// Reply is a comment reply. Same shape as Comment minus nesting.
type Reply struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Text           string    `json:"text"`
	Likes          []string  `json:"likes"`
	CreatedAt      time.Time `json:"created_at"`
}

// Notification is a user-facing event (like, comment, follow, mention).
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id"`
	Type        string    `json:"type"` // like, comment, follow, mention
	PostID      string    `json:"post_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Report is a moderation report against a post or the platform in
// general. Status transitions are driven by admins only.
type Report struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	TargetType string     `json:"target_type"` // post, general
	TargetID   string     `json:"target_id,omitempty"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"` // pending, reviewed, resolved, dismissed
	AdminNote  string     `json:"admin_note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Story is a short-lived image post.
type Story struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	ImageURL       string    `json:"image_url"`
	ViewedBy       []string  `json:"viewed_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Conversation is a chat thread between two users.
type Conversation struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

// Message is a single chat message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats is the admin dashboard aggregate for one timeframe.
type Stats struct {
	Timeframe      string `json:"timeframe"`
	NewUsers       int    `json:"new_users"`
	NewPosts       int    `json:"new_posts"`
	NewComments    int    `json:"new_comments"`
	ActiveUsers    int    `json:"active_users"`
	PendingReports int    `json:"pending_reports"`
	TotalUsers     int    `json:"total_users"`
	TotalPosts     int    `json:"total_posts"`
}

// Timeframe values accepted by the statistics endpoints.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// ValidTimeframe reports whether tf is one of week, month, year.
func ValidTimeframe(tf string) bool {
	return tf == TimeframeWeek || tf == TimeframeMonth || tf == TimeframeYear
}
